package expense

import (
	"context"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithId(context.Background(), "user-1")

var expenseRepoStub = NewRepositoryStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(expenseRepoStub)
	return func() {
		t.Log("Teardown after test")
		expenseRepoStub.Cleanup()
	}
}

func july(day int) civil.Date {
	return civil.Date{Year: 2024, Month: 7, Day: day}
}

func TestServiceImpl_CreateExpense(t *testing.T) {
	t.Run("should store a valid expense", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.CreateExpense(ctx, Expense{Name: " Bus pass ", Amount: 50, Date: july(3)})

		require.NoError(t, err)
		assert.Equal(t, "Bus pass", created.Name)
		stored, err := service.GetExpense(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("should reject a non positive amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		for _, amount := range []float64{0, -10} {
			_, err := service.CreateExpense(ctx, Expense{Name: "Bus pass", Amount: amount, Date: july(3)})

			var verr validation.Errors
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has("amount"))
		}
	})

	t.Run("should require name and date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreateExpense(ctx, Expense{Amount: 5})

		var verr validation.Errors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("name"))
		assert.True(t, verr.Has("date"))
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreateExpense(context.Background(), Expense{Name: "Bus pass", Amount: 50, Date: july(3)})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_ListExpenses(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	_, _ = service.CreateExpense(ctx, Expense{Name: "Rent", Amount: 400, Date: july(31)})
	_, _ = service.CreateExpense(ctx, Expense{Name: "Books", Amount: 30, Date: july(1)})
	_, _ = service.CreateExpense(ctx, Expense{Name: "Old", Amount: 30, Date: civil.Date{Year: 2024, Month: 6, Day: 30}})
	_, _ = service.CreateExpense(user.WithId(context.Background(), "user-2"), Expense{Name: "Other", Amount: 1, Date: july(2)})

	// when
	inJuly, err := service.ListExpenses(ctx, &daterange.Range{From: july(1), To: july(31)})
	require.NoError(t, err)
	all, err := service.ListExpenses(ctx, nil)
	require.NoError(t, err)

	// then
	require.Len(t, inJuly, 2)
	assert.Equal(t, "Books", inJuly[0].Name)
	assert.Equal(t, "Rent", inJuly[1].Name)
	assert.Len(t, all, 3)
}

func TestServiceImpl_UpdateAndDeleteExpense(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	created, _ := service.CreateExpense(ctx, Expense{Name: "Books", Amount: 30, Date: july(1)})
	intruder := user.WithId(context.Background(), "user-2")

	_, err := service.UpdateExpense(intruder, Expense{Id: created.Id, Name: "Mine", Amount: 1, Date: july(1)})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
	assert.ErrorIs(t, service.DeleteExpense(intruder, created.Id), ErrExpenseNotFound)

	updated, err := service.UpdateExpense(ctx, Expense{Id: created.Id, Name: "Textbooks", Amount: 45, Date: july(2)})
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.Amount)

	require.NoError(t, service.DeleteExpense(ctx, created.Id))
	_, err = service.GetExpense(ctx, created.Id)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
