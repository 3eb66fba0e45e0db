package stats

import (
	"context"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/event_bus"
	"github.com/stay-js/job-keeper/internal/utils"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/expense"
	"github.com/stay-js/job-keeper/pkg/job"
	"github.com/stay-js/job-keeper/pkg/position"
	"github.com/stay-js/job-keeper/pkg/preferences"
	"github.com/stay-js/job-keeper/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithId(context.Background(), "user-1")

var (
	positionRepoStub = position.NewRepositoryStub()
	jobRepoStub      = job.NewRepositoryStub(positionRepoStub)
	expenseRepoStub  = expense.NewRepositoryStub()
	prefsRepoStub    = preferences.NewRepositoryStub()
)

var (
	clock              *utils.MockClock
	positionService    position.Service
	jobService         job.Service
	expenseService     expense.Service
	preferencesService preferences.Service
	service            Service
)

func setup(t *testing.T) func() {
	clock = utils.NewMockClock(time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC))
	eventBus := event_bus.NewEventBus()
	positionService = position.NewService(positionRepoStub, eventBus)
	jobService = job.NewService(jobRepoStub, positionService)
	job.SubscribeWageChanges(eventBus, jobRepoStub)
	expenseService = expense.NewService(expenseRepoStub)
	preferencesService = preferences.NewService(prefsRepoStub, eventBus, config.Defaults().Preferences, clock)
	service = NewService(jobService, expenseService, positionService, preferencesService, clock)
	return func() {
		t.Log("Teardown after test")
		jobRepoStub.Cleanup()
		positionRepoStub.Cleanup()
		expenseRepoStub.Cleanup()
		prefsRepoStub.Cleanup()
	}
}

func date(month time.Month, day int) civil.Date {
	return civil.Date{Year: 2024, Month: month, Day: day}
}

func createPosition(t *testing.T, name string, wage float64) position.Position {
	t.Helper()
	p, err := positionService.CreatePosition(ctx, position.Position{Name: name, Wage: wage})
	require.NoError(t, err)
	return p
}

func createJob(t *testing.T, positionId int64, day civil.Date, hours float64) job.Job {
	t.Helper()
	j, err := jobService.CreateJob(ctx, job.Job{Date: day, Location: "Venue", Hours: hours, PositionId: positionId})
	require.NoError(t, err)
	return j
}

func createExpense(t *testing.T, name string, amount float64, day civil.Date) {
	t.Helper()
	_, err := expenseService.CreateExpense(ctx, expense.Expense{Name: name, Amount: amount, Date: day})
	require.NoError(t, err)
}

func TestServiceImpl_CurrentMonth(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	assert.Equal(t, Month{Month: 6, Year: 2024}, service.CurrentMonth())

	clock.Advance(20 * 24 * time.Hour)
	assert.Equal(t, Month{Month: 7, Year: 2024}, service.CurrentMonth())
}

func TestServiceImpl_MonthlySummary(t *testing.T) {
	t.Run("should net the month's payout against the month's expenses", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		bartender := createPosition(t, "Bartender", 20)
		createJob(t, bartender.Id, date(time.July, 5), 10)
		createJob(t, bartender.Id, date(time.July, 20), 5)
		createJob(t, bartender.Id, date(time.August, 1), 8)
		createExpense(t, "Uniform", 50, date(time.July, 3))
		createExpense(t, "Shoes", 80, date(time.June, 30))

		// when
		summary, err := service.MonthlySummary(ctx, Month{Month: 6, Year: 2024})

		// then
		require.NoError(t, err)
		assert.Len(t, summary.Jobs, 2)
		assert.Len(t, summary.Expenses, 1)
		assert.Equal(t, Totals{Hours: 15, Payout: 300, Expenses: 50, Net: 250}, summary.Totals)
		assert.Equal(t, FormattedTotals{Hours: "15", Payout: "£300.00", Expenses: "£50.00", Net: "£250.00"}, summary.Formatted)
		require.Len(t, summary.Positions, 1)
		assert.Equal(t, 300.0, summary.Positions[0].Payout)
		assert.True(t, summary.Preferences.IsDefault)
	})

	t.Run("should follow wage changes", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		waiter := createPosition(t, "Waiter", 10)
		createJob(t, waiter.Id, date(time.July, 1), 4)
		waiter.Wage = 12.5
		_, err := positionService.UpdatePosition(ctx, waiter)
		require.NoError(t, err)

		// when
		summary, err := service.MonthlySummary(ctx, Month{Month: 6, Year: 2024})

		// then
		require.NoError(t, err)
		assert.Equal(t, 50.0, summary.Totals.Payout)
	})

	t.Run("should format with the owner's preferences", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := preferencesService.UpdatePreferences(ctx, preferences.UserPreferences{Currency: "EUR", Locale: "de-DE", Precision: 2})
		require.NoError(t, err)
		createExpense(t, "Ticket", 1234.5, date(time.July, 2))

		// when
		summary, err := service.MonthlySummary(ctx, Month{Month: 6, Year: 2024})

		// then
		require.NoError(t, err)
		assert.False(t, summary.Preferences.IsDefault)
		assert.Equal(t, "1.234,50\u00a0€", summary.Formatted.Expenses)
		assert.Equal(t, "-1.234,50\u00a0€", summary.Formatted.Net)
	})

	t.Run("should require a signed in user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.MonthlySummary(context.Background(), Month{Month: 6, Year: 2024})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_RangeStats(t *testing.T) {
	t.Run("should total the positions within the range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		bartender := createPosition(t, "Bartender", 20)
		waiter := createPosition(t, "Waiter", 15)
		positionRepoStub.AddHours(bartender.Id, date(time.July, 1), 6)
		positionRepoStub.AddHours(waiter.Id, date(time.July, 2), 4)
		positionRepoStub.AddHours(waiter.Id, date(time.September, 2), 9)
		dates := &daterange.Range{From: date(time.July, 1), To: date(time.July, 31)}

		// when
		stats, err := service.RangeStats(ctx, dates)

		// then
		require.NoError(t, err)
		assert.Len(t, stats.Positions, 2)
		assert.Equal(t, 10.0, stats.Hours)
		assert.Equal(t, 180.0, stats.Payout)
	})

	t.Run("should cover all time without a range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		waiter := createPosition(t, "Waiter", 15)
		positionRepoStub.AddHours(waiter.Id, date(time.January, 2), 2)
		positionRepoStub.AddHours(waiter.Id, date(time.September, 2), 2)

		stats, err := service.RangeStats(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, 4.0, stats.Hours)
		assert.Equal(t, 60.0, stats.Payout)
	})
}
