package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/event_bus"
	"github.com/stay-js/job-keeper/internal/utils"
	"github.com/stay-js/job-keeper/pkg/expense"
	"github.com/stay-js/job-keeper/pkg/job"
	"github.com/stay-js/job-keeper/pkg/position"
	"github.com/stay-js/job-keeper/pkg/preferences"
	"github.com/stay-js/job-keeper/pkg/stats"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type repositories struct {
	positions   position.Repository
	jobs        job.Repository
	expenses    expense.Repository
	preferences preferences.Repository
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store    Pinger
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Metrics  *Metrics

	PositionService position.Service
	PositionHandler *position.Handler

	JobService job.Service
	JobHandler *job.Handler

	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	PreferencesService preferences.Service
	PreferencesHandler *preferences.Handler

	StatsService stats.Service
	StatsHandler *stats.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	repos := repositories{
		positions:   position.NewRepository(db),
		jobs:        job.NewRepository(db),
		expenses:    expense.NewRepository(db),
		preferences: preferences.NewRepository(db),
	}
	return buildDependencies(db, repos, cfg, &utils.SystemClock{})
}

func buildDependencies(store Pinger, repos repositories, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{Store: store, Clock: clock}

	deps.EventBus = event_bus.NewEventBus()
	deps.Metrics = NewMetrics()

	deps.PositionService = position.NewService(repos.positions, deps.EventBus)
	deps.PositionHandler = position.NewHandler(deps.PositionService)

	deps.JobService = job.NewService(repos.jobs, deps.PositionService)
	deps.JobHandler = job.NewHandler(deps.JobService)
	job.SubscribeWageChanges(deps.EventBus, repos.jobs)

	deps.ExpenseService = expense.NewService(repos.expenses)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.PreferencesService = preferences.NewService(repos.preferences, deps.EventBus, cfg.Preferences, clock)
	deps.PreferencesHandler = preferences.NewHandler(deps.PreferencesService)

	deps.StatsService = stats.NewService(deps.JobService, deps.ExpenseService, deps.PositionService, deps.PreferencesService, clock)
	deps.StatsHandler = stats.NewHandler(deps.StatsService, stats.NewCsvRenderer(), stats.NewXlsxRenderer())

	return deps
}
