// Package server initializes and runs the voting backend: it opens the
// database, applies migrations, wires the services together, and starts the
// HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/evote-app/evote-backend/internal/cryptox"
	"github.com/evote-app/evote-backend/internal/logging"
	"github.com/evote-app/evote-backend/internal/server/config"
	"github.com/evote-app/evote-backend/internal/server/httpapi"
	"github.com/evote-app/evote-backend/internal/server/mail"
	"github.com/evote-app/evote-backend/internal/server/repositories/repomanager"
	"github.com/evote-app/evote-backend/internal/server/services"
	"github.com/evote-app/evote-backend/internal/shared"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Refuse to start with a missing key share: every ballot written with a
	// wrong key would be unreadable forever.
	key, err := cryptox.DeriveCompositeKey(cfg.KeyShare1, cfg.KeyShare2)
	if err != nil {
		return nil, fmt.Errorf("ballot key: %w", err)
	}
	shared.WipeByteArray(key)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	var mailer mail.Mailer
	if cfg.MailOutboxDir != "" {
		mailer, err = mail.NewFileMailer(cfg.MailOutboxDir, logger)
		if err != nil {
			return nil, err
		}
	} else {
		mailer = mail.NewLogMailer(logger)
	}

	us := services.NewUserService(db, repos, mailer, cfg, logger)
	vs := services.NewVoteService(db, repos, cfg, logger)
	es := services.NewElectionService(db, repos, vs, logger)
	cs := services.NewCandidateService(db, repos, logger)

	httpServer := httpapi.NewServer(cfg.EndpointAddrHTTP, logger, us, es, cs, vs, cfg.SecretKey)

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
