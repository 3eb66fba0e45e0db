package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stay-js/job-keeper/internal/utils"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/expense"
	"github.com/stay-js/job-keeper/pkg/job"
	"github.com/stay-js/job-keeper/pkg/position"
	"github.com/stay-js/job-keeper/pkg/preferences"
	"github.com/stay-js/job-keeper/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	CurrentMonth() Month
	MonthlySummary(ctx context.Context, month Month) (MonthlySummary, error)
	RangeStats(ctx context.Context, dates *daterange.Range) (RangeStats, error)
}

type jobLister interface {
	ListJobs(ctx context.Context, filter job.Filter) ([]job.JobDetails, error)
}

type expenseLister interface {
	ListExpenses(ctx context.Context, dates *daterange.Range) ([]expense.Expense, error)
}

type positionStatsLister interface {
	ListPositionsWithHoursWorked(ctx context.Context, dates *daterange.Range) ([]position.PositionStats, error)
}

type preferencesReader interface {
	GetPreferences(ctx context.Context) (preferences.Resolved, error)
}

type ServiceImpl struct {
	jobs        jobLister
	expenses    expenseLister
	positions   positionStatsLister
	preferences preferencesReader
	clock       utils.Clock
}

func NewService(
	jobs jobLister,
	expenses expenseLister,
	positions positionStatsLister,
	preferences preferencesReader,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		jobs:        jobs,
		expenses:    expenses,
		positions:   positions,
		preferences: preferences,
		clock:       clock,
	}
}

func (s *ServiceImpl) CurrentMonth() Month {
	return CurrentMonth(s.clock)
}

// MonthlySummary loads the month's jobs, expenses and the owner's preferences concurrently and
// re-aggregates them into per-position subtotals and totals.
func (s *ServiceImpl) MonthlySummary(ctx context.Context, month Month) (MonthlySummary, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	dates := month.Range()

	var (
		jobs     []job.JobDetails
		expenses []expense.Expense
		prefs    preferences.Resolved
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.ListJobs(gctx, job.Filter{Dates: &dates})
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpenses(gctx, &dates)
		return err
	})
	g.Go(func() error {
		var err error
		prefs, err = s.preferences.GetPreferences(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return MonthlySummary{}, err
	}
	log.Tracef("summary of %s: %d job(s), %d expense(s)", month, len(jobs), len(expenses))

	totals := ComputeTotals(jobs, expenses)
	return MonthlySummary{
		Month:       month,
		Dates:       dates,
		Jobs:        jobs,
		Expenses:    expenses,
		Positions:   SummarizeJobs(jobs),
		Totals:      totals,
		Formatted:   formatTotals(totals, prefs.UserPreferences),
		Preferences: prefs,
	}, nil
}

// RangeStats reports the store's per-position aggregation for the range with overall totals.
func (s *ServiceImpl) RangeStats(ctx context.Context, dates *daterange.Range) (RangeStats, error) {
	positions, err := s.positions.ListPositionsWithHoursWorked(ctx, dates)
	if err != nil {
		return RangeStats{}, err
	}
	var hours, payout decimal.Decimal
	for _, p := range positions {
		hours = hours.Add(decimal.NewFromFloat(p.HoursWorked))
		payout = payout.Add(decimal.NewFromFloat(p.Payout))
	}
	return RangeStats{
		Dates:     dates,
		Positions: positions,
		Hours:     hours.InexactFloat64(),
		Payout:    payout.InexactFloat64(),
	}, nil
}
