package job

import (
	"context"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/test_utils"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, Repository, position.Repository, string) {
	db := test_utils.TestDB(t)
	return context.Background(), NewRepository(db), position.NewRepository(db), "user-1"
}

func TestRepositoryImpl_PayoutFollowsCurrentWage(t *testing.T) {
	// given
	ctx, repo, positions, userId := setupTestRepository(t)
	bartender, err := positions.CreatePosition(ctx, userId, position.Position{Name: "Bartender", Wage: 20})
	require.NoError(t, err)

	// when
	created, err := repo.CreateJob(ctx, userId, Job{Date: july(10), Location: "Venue", Hours: 5, PositionId: bartender.Id})
	require.NoError(t, err)

	// then
	jobs, err := repo.ListJobs(ctx, userId, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, created.Id, jobs[0].Id)
	assert.Equal(t, july(10), jobs[0].Date)
	assert.Equal(t, "", jobs[0].Event)
	assert.Equal(t, 100.0, jobs[0].Payout)
	stats, err := positions.ListPositionsWithHoursWorked(ctx, userId, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stats[0].HoursWorked)
	assert.Equal(t, 100.0, stats[0].Payout)

	// when the wage changes
	_, err = positions.UpdatePosition(ctx, userId, position.Position{Id: bartender.Id, Name: "Bartender", Wage: 25})
	require.NoError(t, err)

	// then historical payouts follow
	jobs, err = repo.ListJobs(ctx, userId, nil)
	require.NoError(t, err)
	assert.Equal(t, 125.0, jobs[0].Payout)
	stats, err = positions.ListPositionsWithHoursWorked(ctx, userId, nil)
	require.NoError(t, err)
	assert.Equal(t, 125.0, stats[0].Payout)
}

func TestRepositoryImpl_DeletePositionAfterItsJobs(t *testing.T) {
	// given
	ctx, repo, positions, userId := setupTestRepository(t)
	bartender, _ := positions.CreatePosition(ctx, userId, position.Position{Name: "Bartender", Wage: 20})
	created, err := repo.CreateJob(ctx, userId, Job{Date: july(10), Location: "Venue", Hours: 5, PositionId: bartender.Id})
	require.NoError(t, err)

	// when / then
	assert.ErrorIs(t, positions.DeletePosition(ctx, userId, bartender.Id), position.ErrPositionInUse)
	require.NoError(t, repo.DeleteJob(ctx, userId, created.Id))
	assert.NoError(t, positions.DeletePosition(ctx, userId, bartender.Id))
}

func TestRepositoryImpl_CreateJobWithForeignPosition(t *testing.T) {
	ctx, repo, positions, userId := setupTestRepository(t)
	foreign, _ := positions.CreatePosition(ctx, "user-2", position.Position{Name: "Cook", Wage: 10})

	_, err := repo.CreateJob(ctx, userId, Job{Date: july(10), Location: "Venue", Hours: 5, PositionId: foreign.Id})

	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestRepositoryImpl_ListJobsInRange(t *testing.T) {
	// given
	ctx, repo, positions, userId := setupTestRepository(t)
	bartender, _ := positions.CreatePosition(ctx, userId, position.Position{Name: "Bartender", Wage: 20})
	for _, date := range []civil.Date{{Year: 2024, Month: 6, Day: 30}, july(31), july(1), {Year: 2024, Month: 8, Day: 1}} {
		_, err := repo.CreateJob(ctx, userId, Job{Date: date, Location: "Venue", Event: "Gig", Hours: 1, PositionId: bartender.Id})
		require.NoError(t, err)
	}

	// when
	jobs, err := repo.ListJobs(ctx, userId, &daterange.Range{From: july(1), To: july(31)})

	// then
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, july(1), jobs[0].Date)
	assert.Equal(t, july(31), jobs[1].Date)
	assert.Equal(t, "Gig", jobs[0].Event)

	count, err := repo.CountJobsForPosition(ctx, userId, bartender.Id)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestRepositoryImpl_UpdateJobOwnership(t *testing.T) {
	// given
	ctx, repo, positions, userId := setupTestRepository(t)
	bartender, _ := positions.CreatePosition(ctx, userId, position.Position{Name: "Bartender", Wage: 20})
	created, _ := repo.CreateJob(ctx, userId, Job{Date: july(10), Location: "Venue", Hours: 5, PositionId: bartender.Id})
	changed := Job{Id: created.Id, Date: july(11), Location: "Arena", Hours: 8, PositionId: bartender.Id}

	// when
	_, err := repo.UpdateJob(ctx, "user-2", changed)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, repo.DeleteJob(ctx, "user-2", created.Id), ErrJobNotFound)
	_, err = repo.UpdateJob(ctx, userId, changed)
	require.NoError(t, err)

	// then
	stored, err := repo.GetJob(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Arena", stored.Location)
	assert.Equal(t, 160.0, stored.Payout)
	_, err = repo.GetJob(ctx, "user-2", created.Id)
	assert.ErrorIs(t, err, ErrJobNotFound)
}
