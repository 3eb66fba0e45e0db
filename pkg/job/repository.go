package job

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

var ErrJobNotFound = errors.New("job not found")
var ErrUnknownPosition = errors.New("position does not exist")

type Repository interface {
	ListJobs(ctx context.Context, userId string, dates *daterange.Range) ([]JobDetails, error)
	GetJob(ctx context.Context, userId string, id int64) (JobDetails, error)
	CreateJob(ctx context.Context, userId string, job Job) (Job, error)
	UpdateJob(ctx context.Context, userId string, job Job) (Job, error)
	DeleteJob(ctx context.Context, userId string, id int64) error
	CountJobsForPosition(ctx context.Context, userId string, positionId int64) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectJobDetails = `SELECT j.id, j.date, j.location, COALESCE(j.event, ''), j.hours, j.position_id,
				p.name, p.wage, j.hours * p.wage AS payout
			  FROM jobs j
			  JOIN positions p ON p.id = j.position_id`

func (r *RepositoryImpl) ListJobs(ctx context.Context, userId string, dates *daterange.Range) ([]JobDetails, error) {
	args := []any{userId}
	query := selectJobDetails + ` WHERE j.user_id = $1`
	if dates != nil {
		from, to := dates.Bounds()
		args = append(args, from, to)
		query += ` AND j.date BETWEEN $2 AND $3`
	}
	query += ` ORDER BY j.date, j.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query jobs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	jobs := make([]JobDetails, 0)
	for rows.Next() {
		details, err := scanJobDetails(rows)
		if err != nil {
			err := fmt.Errorf("error scanning job: %w", err)
			log.Error(err)
			return nil, err
		}
		jobs = append(jobs, details)
	}
	return jobs, rows.Err()
}

func (r *RepositoryImpl) GetJob(ctx context.Context, userId string, id int64) (JobDetails, error) {
	query := selectJobDetails + ` WHERE j.user_id = $1 AND j.id = $2`

	details, err := scanJobDetails(r.db.QueryRow(ctx, query, userId, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobDetails{}, ErrJobNotFound
		}
		err := fmt.Errorf("could not get job: %w", err)
		log.Error(err)
		return JobDetails{}, err
	}
	return details, nil
}

// CreateJob stores the job only when its position belongs to the same owner.
func (r *RepositoryImpl) CreateJob(ctx context.Context, userId string, job Job) (Job, error) {
	query := `INSERT INTO jobs (user_id, location, event, date, hours, position_id)
			  SELECT $1, $2::text, NULLIF($3::text, ''), $4::date, $5::double precision, p.id
			  FROM positions p
			  WHERE p.id = $6 AND p.user_id = $1
			  RETURNING id`

	err := r.db.QueryRow(ctx, query,
		userId,
		job.Location,
		job.Event,
		job.Date.In(time.UTC),
		job.Hours,
		job.PositionId,
	).Scan(&job.Id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrUnknownPosition
		}
		err := fmt.Errorf("could not create job: %w", err)
		log.Error(err)
		return Job{}, err
	}
	return job, nil
}

func (r *RepositoryImpl) UpdateJob(ctx context.Context, userId string, job Job) (Job, error) {
	query := `UPDATE jobs
			  SET location = $1, event = NULLIF($2::text, ''), date = $3, hours = $4, position_id = $5
			  WHERE id = $6 AND user_id = $7
			    AND EXISTS (SELECT 1 FROM positions p WHERE p.id = $5 AND p.user_id = $7)`

	result, err := r.db.Exec(ctx, query,
		job.Location,
		job.Event,
		job.Date.In(time.UTC),
		job.Hours,
		job.PositionId,
		job.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update job: %w", err)
		log.Error(err)
		return Job{}, err
	}
	if result.RowsAffected() == 0 {
		return Job{}, ErrJobNotFound
	}
	return job, nil
}

func (r *RepositoryImpl) DeleteJob(ctx context.Context, userId string, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete job: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *RepositoryImpl) CountJobsForPosition(ctx context.Context, userId string, positionId int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE user_id = $1 AND position_id = $2`, userId, positionId,
	).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count jobs: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func scanJobDetails(row pgx.Row) (JobDetails, error) {
	var (
		details JobDetails
		date    time.Time
	)
	err := row.Scan(
		&details.Id,
		&date,
		&details.Location,
		&details.Event,
		&details.Hours,
		&details.PositionId,
		&details.PositionName,
		&details.Wage,
		&details.Payout,
	)
	if err != nil {
		return JobDetails{}, err
	}
	details.Date = civil.DateOf(date)
	return details, nil
}
