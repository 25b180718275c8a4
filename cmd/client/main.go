package main

import (
	"context"
	"log"
	"os"

	"github.com/evote-app/evote-backend/internal/buildinfo"
	"github.com/evote-app/evote-backend/internal/client/cli"
	"github.com/evote-app/evote-backend/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
