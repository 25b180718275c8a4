package config

import (
	"flag"
	"os"
	"time"

	"github.com/evote-app/evote-backend/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-r int      request timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend server")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
