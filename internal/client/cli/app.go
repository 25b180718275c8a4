// Package cli implements the interactive voter CLI. It drives the backend
// HTTP API: account registration, email verification, one-time credential
// login, browsing elections, casting a ballot, and reading results.
package cli

import (
	"bufio"
	"os"

	"github.com/evote-app/evote-backend/internal/client/api"
	"github.com/evote-app/evote-backend/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	email  string
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}
