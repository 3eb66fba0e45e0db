package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/database"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *pgxpool.Pool
	router *mux.Router
	srv    *http.Server
}

// NewApplication connects to the store, applies pending migrations and builds the router.
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		db.Close()
		return nil, err
	}

	r, err := NewRouter(BuildDependencies(db, cfg), cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, router: r, srv: srv}, nil
}

func NewRouter(deps *Dependencies, cfg config.Application) (*mux.Router, error) {
	r := mux.NewRouter()
	SetupMiddleware(r, deps, cfg)
	if err := RegisterRoutes(r, deps, cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests and closes the pool.
func (a *Application) Run(ctx context.Context) error {
	defer a.db.Close()

	errs := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errs <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
