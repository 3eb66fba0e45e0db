package position

import (
	"context"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/event_bus"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithId(context.Background(), "user-1")

var positionRepoStub = NewRepositoryStub()

var eventBus *event_bus.EventBus

var service Service

func setup(t *testing.T) func() {
	eventBus = event_bus.NewEventBus()
	service = NewService(positionRepoStub, eventBus)
	return func() {
		t.Log("Teardown after test")
		positionRepoStub.Cleanup()
	}
}

func TestServiceImpl_CreatePosition(t *testing.T) {
	t.Run("should trim the name and store the position", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreatePosition(ctx, Position{Name: "  Bartender ", Wage: 20})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "Bartender", created.Name)
		stored, err := service.GetPosition(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("should accept a zero wage", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreatePosition(ctx, Position{Name: "Volunteer", Wage: 0})

		assert.NoError(t, err)
	})

	t.Run("should reject invalid input before reaching the store", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.CreatePosition(ctx, Position{Name: "   ", Wage: -1})

		// then
		var verr validation.Errors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("name"))
		assert.True(t, verr.Has("wage"))
		positions, _ := service.ListPositions(ctx)
		assert.Empty(t, positions)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreatePosition(context.Background(), Position{Name: "Bartender", Wage: 20})

		assert.ErrorIs(t, err, user.ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_ListPositions(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	_, _ = service.CreatePosition(ctx, Position{Name: "Waiter", Wage: 15})
	_, _ = service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
	_, _ = service.CreatePosition(user.WithId(context.Background(), "user-2"), Position{Name: "Cook", Wage: 18})

	// when
	positions, err := service.ListPositions(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "Bartender", positions[0].Name)
	assert.Equal(t, "Waiter", positions[1].Name)
}

func TestServiceImpl_UpdatePosition(t *testing.T) {
	t.Run("should publish wage change", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
		var published []event_bus.PositionWageChanged
		event_bus.SubscribeTyped(eventBus, event_bus.PositionWageChangedType,
			func(e event_bus.EventT[event_bus.PositionWageChanged]) error {
				published = append(published, e.Data)
				return nil
			})

		// when
		updated, err := service.UpdatePosition(ctx, Position{Id: created.Id, Name: "Bartender", Wage: 25})

		// then
		require.NoError(t, err)
		assert.Equal(t, 25.0, updated.Wage)
		require.Len(t, published, 1)
		assert.Equal(t, event_bus.PositionWageChanged{UserId: "user-1", PositionId: created.Id, OldWage: 20, NewWage: 25}, published[0])
	})

	t.Run("should not publish when only the name changes", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
		published := 0
		eventBus.Subscribe(event_bus.PositionWageChangedType, func(e event_bus.Event) error {
			published++
			return nil
		})

		_, err := service.UpdatePosition(ctx, Position{Id: created.Id, Name: "Head bartender", Wage: 20})

		require.NoError(t, err)
		assert.Zero(t, published)
	})

	t.Run("should not update a position of another owner", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})

		// when
		_, err := service.UpdatePosition(user.WithId(context.Background(), "intruder"), Position{Id: created.Id, Name: "Mine", Wage: 99})

		// then
		assert.ErrorIs(t, err, ErrPositionNotFound)
		stored, _ := service.GetPosition(ctx, created.Id)
		assert.Equal(t, "Bartender", stored.Name)
	})
}

func TestServiceImpl_DeletePosition(t *testing.T) {
	t.Run("should refuse to delete a position in use", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
		positionRepoStub.AddHours(created.Id, civil.Date{Year: 2024, Month: 7, Day: 10}, 5)

		// when
		err := service.DeletePosition(ctx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrPositionInUse)
	})

	t.Run("should delete an unused position", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})

		err := service.DeletePosition(ctx, created.Id)

		require.NoError(t, err)
		_, err = service.GetPosition(ctx, created.Id)
		assert.ErrorIs(t, err, ErrPositionNotFound)
	})
}

func TestServiceImpl_ListPositionsWithHoursWorked(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	bartender, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
	_, _ = service.CreatePosition(ctx, Position{Name: "Waiter", Wage: 15})
	positionRepoStub.AddHours(bartender.Id, civil.Date{Year: 2024, Month: 6, Day: 30}, 3)
	positionRepoStub.AddHours(bartender.Id, civil.Date{Year: 2024, Month: 7, Day: 10}, 5)
	july := &daterange.Range{From: civil.Date{Year: 2024, Month: 7, Day: 1}, To: civil.Date{Year: 2024, Month: 7, Day: 31}}

	// when
	all, err := service.ListPositionsWithHoursWorked(ctx, nil)
	require.NoError(t, err)
	inJuly, err := service.ListPositionsWithHoursWorked(ctx, july)
	require.NoError(t, err)

	// then
	require.Len(t, all, 2)
	assert.Equal(t, 8.0, all[0].HoursWorked)
	assert.Equal(t, 160.0, all[0].Payout)
	assert.False(t, all[0].Deletable())
	assert.Zero(t, all[1].HoursWorked)
	assert.Zero(t, all[1].Payout)
	assert.True(t, all[1].Deletable())

	require.Len(t, inJuly, 2)
	assert.Equal(t, 5.0, inJuly[0].HoursWorked)
	assert.Equal(t, 100.0, inJuly[0].Payout)
}
