package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config values from environment variables, after loading
// an optional .env file from the working directory. A missing .env file is
// not an error; variables already exported win over .env contents.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setIfPresent := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}

	setIfPresent("ENDPOINT_ADDR_HTTP", &config.EndpointAddrHTTP)
	setIfPresent("DATABASE_DSN", &config.DatabaseDSN)
	setIfPresent("SECRET_KEY", &config.SecretKey)
	setIfPresent("BALLOT_KEY_SHARE_1", &config.KeyShare1)
	setIfPresent("BALLOT_KEY_SHARE_2", &config.KeyShare2)
	setIfPresent("MAIL_OUTBOX_DIR", &config.MailOutboxDir)

	if v, ok := os.LookupEnv("TOKEN_VALIDITY_DURATION"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
