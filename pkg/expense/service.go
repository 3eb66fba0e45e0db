package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/user"
)

type Service interface {
	ListExpenses(ctx context.Context, dates *daterange.Range) ([]Expense, error)
	GetExpense(ctx context.Context, id int64) (Expense, error)
	CreateExpense(ctx context.Context, expense Expense) (Expense, error)
	UpdateExpense(ctx context.Context, expense Expense) (Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListExpenses(ctx context.Context, dates *daterange.Range) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListExpenses(ctx, userId, dates)
}

func (s *ServiceImpl) GetExpense(ctx context.Context, id int64) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetExpense(ctx, userId, id)
}

func (s *ServiceImpl) CreateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	expense, err = normalize(expense)
	if err != nil {
		return Expense{}, err
	}
	return s.repo.CreateExpense(ctx, userId, expense)
}

func (s *ServiceImpl) UpdateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	expense, err = normalize(expense)
	if err != nil {
		return Expense{}, err
	}
	return s.repo.UpdateExpense(ctx, userId, expense)
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteExpense(ctx, userId, id)
}

func normalize(expense Expense) (Expense, error) {
	expense.Name = strings.TrimSpace(expense.Name)

	var v validation.Validator
	v.Text("name", expense.Name, validation.MaxTextLength)
	if v.Number("amount", expense.Amount) {
		v.Check(expense.Amount > 0, "amount", "must be more than 0")
	}
	v.Check(expense.Date.IsValid(), "date", "is required")
	return expense, v.Err()
}
