package config

import (
	"encoding/json"
	"os"

	"github.com/evote-app/evote-backend/internal/flagx"
	"github.com/evote-app/evote-backend/internal/timex"
)

// JsonConfig is the DTO for the optional JSON configuration file. Duration
// fields accept both strings such as "10s" and integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file given via the
// -c/-config flags, if any.
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

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}
