package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-sql/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stay-js/job-keeper/pkg/daterange"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")

type Repository interface {
	ListExpenses(ctx context.Context, userId string, dates *daterange.Range) ([]Expense, error)
	GetExpense(ctx context.Context, userId string, id int64) (Expense, error)
	CreateExpense(ctx context.Context, userId string, expense Expense) (Expense, error)
	UpdateExpense(ctx context.Context, userId string, expense Expense) (Expense, error)
	DeleteExpense(ctx context.Context, userId string, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListExpenses(ctx context.Context, userId string, dates *daterange.Range) ([]Expense, error) {
	args := []any{userId}
	query := `SELECT id, name, amount, date FROM expenses WHERE user_id = $1`
	if dates != nil {
		from, to := dates.Bounds()
		args = append(args, from, to)
		query += ` AND date BETWEEN $2 AND $3`
	}
	query += ` ORDER BY date, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("error scanning expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *RepositoryImpl) GetExpense(ctx context.Context, userId string, id int64) (Expense, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, amount, date FROM expenses WHERE user_id = $1 AND id = $2`, userId, id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ErrExpenseNotFound
		}
		err := fmt.Errorf("could not get expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) CreateExpense(ctx context.Context, userId string, expense Expense) (Expense, error) {
	query := `INSERT INTO expenses (user_id, name, amount, date) VALUES ($1, $2, $3, $4) RETURNING id`

	err := r.db.QueryRow(ctx, query, userId, expense.Name, expense.Amount, expense.Date.In(time.UTC)).Scan(&expense.Id)
	if err != nil {
		err := fmt.Errorf("could not create expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) UpdateExpense(ctx context.Context, userId string, expense Expense) (Expense, error) {
	query := `UPDATE expenses SET name = $1, amount = $2, date = $3 WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(ctx, query, expense.Name, expense.Amount, expense.Date.In(time.UTC), expense.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	if result.RowsAffected() == 0 {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (r *RepositoryImpl) DeleteExpense(ctx context.Context, userId string, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		e    Expense
		date time.Time
	)
	if err := row.Scan(&e.Id, &e.Name, &e.Amount, &date); err != nil {
		return Expense{}, err
	}
	e.Date = civil.DateOf(date)
	return e, nil
}
