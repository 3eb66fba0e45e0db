package position

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stay-js/job-keeper/internal/database"
	"github.com/stay-js/job-keeper/pkg/daterange"
	log "github.com/sirupsen/logrus"
)

var ErrPositionNotFound = errors.New("position not found")
var ErrPositionInUse = errors.New("position is referenced by recorded jobs")

type Repository interface {
	ListPositions(ctx context.Context, userId string) ([]Position, error)
	// ListPositionsWithHoursWorked aggregates the jobs of every position. A nil range covers the
	// full history.
	ListPositionsWithHoursWorked(ctx context.Context, userId string, dates *daterange.Range) ([]PositionStats, error)
	GetPosition(ctx context.Context, userId string, id int64) (Position, error)
	CreatePosition(ctx context.Context, userId string, position Position) (Position, error)
	UpdatePosition(ctx context.Context, userId string, position Position) (Position, error)
	DeletePosition(ctx context.Context, userId string, id int64) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListPositions(ctx context.Context, userId string) ([]Position, error) {
	query := `SELECT id, name, wage FROM positions WHERE user_id = $1 ORDER BY name, id`

	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query positions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	positions := make([]Position, 0)
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.Id, &p.Name, &p.Wage); err != nil {
			err := fmt.Errorf("error scanning position: %w", err)
			log.Error(err)
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (r *RepositoryImpl) ListPositionsWithHoursWorked(ctx context.Context, userId string, dates *daterange.Range) ([]PositionStats, error) {
	args := []any{userId}
	jobFilter := ""
	if dates != nil {
		from, to := dates.Bounds()
		args = append(args, from, to)
		jobFilter = "AND j.date BETWEEN $2 AND $3"
	}

	// The range narrows the join only, so positions without jobs in range keep a zero row.
	query := `SELECT p.id, p.name, p.wage,
				COALESCE(SUM(j.hours), 0) AS hours_worked,
				COALESCE(SUM(j.hours), 0) * p.wage AS payout,
				EXISTS (SELECT 1 FROM jobs used WHERE used.position_id = p.id) AS in_use
			  FROM positions p
			  LEFT JOIN jobs j ON j.position_id = p.id AND j.user_id = p.user_id ` + jobFilter + `
			  WHERE p.user_id = $1
			  GROUP BY p.id
			  ORDER BY p.name, p.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query position stats: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	stats := make([]PositionStats, 0)
	for rows.Next() {
		var s PositionStats
		if err := rows.Scan(&s.Id, &s.Name, &s.Wage, &s.HoursWorked, &s.Payout, &s.InUse); err != nil {
			err := fmt.Errorf("error scanning position stats: %w", err)
			log.Error(err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *RepositoryImpl) GetPosition(ctx context.Context, userId string, id int64) (Position, error) {
	query := `SELECT id, name, wage FROM positions WHERE user_id = $1 AND id = $2`

	var p Position
	err := r.db.QueryRow(ctx, query, userId, id).Scan(&p.Id, &p.Name, &p.Wage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Position{}, ErrPositionNotFound
		}
		err := fmt.Errorf("could not get position: %w", err)
		log.Error(err)
		return Position{}, err
	}
	return p, nil
}

func (r *RepositoryImpl) CreatePosition(ctx context.Context, userId string, position Position) (Position, error) {
	query := `INSERT INTO positions (user_id, name, wage) VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRow(ctx, query, userId, position.Name, position.Wage).Scan(&position.Id)
	if err != nil {
		err := fmt.Errorf("could not create position: %w", err)
		log.Error(err)
		return Position{}, err
	}
	return position, nil
}

func (r *RepositoryImpl) UpdatePosition(ctx context.Context, userId string, position Position) (Position, error) {
	query := `UPDATE positions SET name = $1, wage = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(ctx, query, position.Name, position.Wage, position.Id, userId)
	if err != nil {
		err := fmt.Errorf("could not update position: %w", err)
		log.Error(err)
		return Position{}, err
	}
	if result.RowsAffected() == 0 {
		return Position{}, ErrPositionNotFound
	}
	return position, nil
}

func (r *RepositoryImpl) DeletePosition(ctx context.Context, userId string, id int64) error {
	query := `DELETE FROM positions WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userId)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrPositionInUse
		}
		err := fmt.Errorf("could not delete position: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPositionNotFound
	}
	return nil
}
