package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Login(ctx context.Context) error
	Elections(ctx context.Context) error
	Candidates(ctx context.Context) error
	Vote(ctx context.Context) error
	MyVotes(ctx context.Context) error
	Results(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the voter CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - verify         — confirm the emailed verification code
//	  - login          — request and enter a one-time credential
//	  - elections      — list elections (needs login)
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - elections      — list elections
//	  - candidates     — list candidates of an election
//	  - vote           — cast a ballot
//	  - myvotes        — show own decrypted ballots
//	  - results        — show the tally of an ended election
//	  - logout         — drop the session
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("evote> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: elections, candidates, vote, myvotes, results, logout, exit")
			} else {
				printlnFn("Available commands: register, verify, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "login":
			_ = a.Login(ctx)

		case "e", "elections":
			_ = a.Elections(ctx)

		case "candidates":
			_ = a.Candidates(ctx)

		case "vote":
			_ = a.Vote(ctx)

		case "myvotes":
			_ = a.MyVotes(ctx)

		case "results":
			_ = a.Results(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
