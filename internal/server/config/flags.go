package config

import (
	"flag"
	"os"
	"time"

	"github.com/evote-app/evote-backend/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-m string   mail outbox directory (file delivery for development)
//
// The key shares are intentionally not flags: they would end up in process
// listings and shell history. They come from the environment only.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.MailOutboxDir, "m", config.MailOutboxDir, "mail outbox directory")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
