package config

import (
	"encoding/json"
	"os"

	"github.com/evote-app/evote-backend/internal/flagx"
	"github.com/evote-app/evote-backend/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file. Duration
// fields accept both strings such as "1h" and integer nanoseconds. Key
// shares are deliberately absent: secret material is not read from config
// files, only from the environment.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	MailOutboxDir         string         `json:"mail_outbox_dir"`
}

// parseJson loads configuration values from the JSON file given via the
// -c/-config flags, if any. A missing flag means no JSON is loaded; an
// unreadable or invalid file panics, since starting with half-applied
// configuration is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.MailOutboxDir != "" {
		config.MailOutboxDir = c.MailOutboxDir
	}
}
