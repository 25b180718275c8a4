package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.email == "" {
		return ">"
	}
	return fmt.Sprintf("(%s) >", a.email)
}

func (a *App) Run(ctx context.Context) {
	log.Println("Welcome to the eVote CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
