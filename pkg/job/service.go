package job

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/position"
	"github.com/stay-js/job-keeper/pkg/user"
)

// MaxHours is the longest shift that can be recorded for a single day.
const MaxHours = 24

var ErrNoPositions = errors.New("no positions yet: create a position before recording jobs")

type Service interface {
	ListJobs(ctx context.Context, filter Filter) ([]JobDetails, error)
	GetJob(ctx context.Context, id int64) (JobDetails, error)
	CreateJob(ctx context.Context, job Job) (Job, error)
	UpdateJob(ctx context.Context, job Job) (Job, error)
	DeleteJob(ctx context.Context, id int64) error
}

type positionLister interface {
	ListPositions(ctx context.Context) ([]position.Position, error)
}

type ServiceImpl struct {
	repo      Repository
	positions positionLister
}

func NewService(repo Repository, positions positionLister) *ServiceImpl {
	return &ServiceImpl{repo: repo, positions: positions}
}

func (s *ServiceImpl) ListJobs(ctx context.Context, filter Filter) ([]JobDetails, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	jobs, err := s.repo.ListJobs(ctx, userId, filter.Dates)
	if err != nil {
		return nil, err
	}
	return search(jobs, filter.Query), nil
}

func (s *ServiceImpl) GetJob(ctx context.Context, id int64) (JobDetails, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return JobDetails{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetJob(ctx, userId, id)
}

func (s *ServiceImpl) CreateJob(ctx context.Context, job Job) (Job, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Job{}, fmt.Errorf("failed to get current user: %w", err)
	}
	job, err = s.validate(ctx, job)
	if err != nil {
		return Job{}, err
	}
	return s.repo.CreateJob(ctx, userId, job)
}

func (s *ServiceImpl) UpdateJob(ctx context.Context, job Job) (Job, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Job{}, fmt.Errorf("failed to get current user: %w", err)
	}
	job, err = s.validate(ctx, job)
	if err != nil {
		return Job{}, err
	}
	return s.repo.UpdateJob(ctx, userId, job)
}

func (s *ServiceImpl) DeleteJob(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteJob(ctx, userId, id)
}

// validate trims the text fields and checks the job against the owner's positions.
// ErrNoPositions is returned before any field is looked at.
func (s *ServiceImpl) validate(ctx context.Context, job Job) (Job, error) {
	positions, err := s.positions.ListPositions(ctx)
	if err != nil {
		return Job{}, err
	}
	if len(positions) == 0 {
		return Job{}, ErrNoPositions
	}

	job.Location = strings.TrimSpace(job.Location)
	job.Event = strings.TrimSpace(job.Event)

	var v validation.Validator
	v.Check(job.Date.IsValid(), "date", "must be a date in YYYY-MM-DD format")
	v.Text("location", job.Location, validation.MaxTextLength)
	v.OptionalText("event", job.Event, validation.MaxTextLength)
	if v.Number("hours", job.Hours) {
		v.Check(job.Hours > 0 && job.Hours <= MaxHours, "hours", "must be more than 0 and at most 24")
	}
	switch {
	case job.PositionId == 0:
		v.Add("positionId", "is required")
	case !slices.ContainsFunc(positions, func(p position.Position) bool { return p.Id == job.PositionId }):
		v.Add("positionId", "unknown position")
	}
	return job, v.Err()
}

type searchSource []JobDetails

func (s searchSource) String(i int) string {
	return s[i].Location + " " + s[i].Event + " " + s[i].PositionName
}

func (s searchSource) Len() int {
	return len(s)
}

// search keeps the jobs matching query in their original order.
func search(jobs []JobDetails, query string) []JobDetails {
	query = strings.TrimSpace(query)
	if query == "" {
		return jobs
	}
	matches := fuzzy.FindFromNoSort(query, searchSource(jobs))
	found := make([]JobDetails, 0, len(matches))
	for _, m := range matches {
		found = append(found, jobs[m.Index])
	}
	return found
}
