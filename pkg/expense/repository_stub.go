package expense

import (
	"context"
	"sort"

	"github.com/stay-js/job-keeper/pkg/daterange"
)

type RepositoryStub struct {
	nextId   int64
	expenses map[string]map[int64]Expense
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{expenses: make(map[string]map[int64]Expense)}
}

func (s *RepositoryStub) ListExpenses(ctx context.Context, userId string, dates *daterange.Range) ([]Expense, error) {
	expenses := make([]Expense, 0)
	for _, e := range s.expenses[userId] {
		if dates.Contains(e.Date) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Date != expenses[j].Date {
			return expenses[i].Date.Before(expenses[j].Date)
		}
		return expenses[i].Id < expenses[j].Id
	})
	return expenses, nil
}

func (s *RepositoryStub) GetExpense(ctx context.Context, userId string, id int64) (Expense, error) {
	e, ok := s.expenses[userId][id]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return e, nil
}

func (s *RepositoryStub) CreateExpense(ctx context.Context, userId string, expense Expense) (Expense, error) {
	s.nextId++
	expense.Id = s.nextId
	if s.expenses[userId] == nil {
		s.expenses[userId] = make(map[int64]Expense)
	}
	s.expenses[userId][expense.Id] = expense
	return expense, nil
}

func (s *RepositoryStub) UpdateExpense(ctx context.Context, userId string, expense Expense) (Expense, error) {
	if _, ok := s.expenses[userId][expense.Id]; !ok {
		return Expense{}, ErrExpenseNotFound
	}
	s.expenses[userId][expense.Id] = expense
	return expense, nil
}

func (s *RepositoryStub) DeleteExpense(ctx context.Context, userId string, id int64) error {
	if _, ok := s.expenses[userId][id]; !ok {
		return ErrExpenseNotFound
	}
	delete(s.expenses[userId], id)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.expenses = make(map[string]map[int64]Expense)
}
