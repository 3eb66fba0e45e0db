package job

import (
	"context"
	"sort"

	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/position"
)

// RepositoryStub keeps jobs in memory and joins them with positions of a position stub,
// so wage changes show up in payouts the same way they do in the database.
type RepositoryStub struct {
	nextId    int64
	jobs      map[string]map[int64]Job
	positions position.Repository
}

func NewRepositoryStub(positions position.Repository) *RepositoryStub {
	return &RepositoryStub{jobs: make(map[string]map[int64]Job), positions: positions}
}

func (s *RepositoryStub) ListJobs(ctx context.Context, userId string, dates *daterange.Range) ([]JobDetails, error) {
	jobs := make([]JobDetails, 0)
	for _, j := range s.jobs[userId] {
		if !dates.Contains(j.Date) {
			continue
		}
		details, err := s.details(ctx, userId, j)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, details)
	}
	sort.Slice(jobs, func(a, b int) bool {
		if jobs[a].Date != jobs[b].Date {
			return jobs[a].Date.Before(jobs[b].Date)
		}
		return jobs[a].Id < jobs[b].Id
	})
	return jobs, nil
}

func (s *RepositoryStub) GetJob(ctx context.Context, userId string, id int64) (JobDetails, error) {
	j, ok := s.jobs[userId][id]
	if !ok {
		return JobDetails{}, ErrJobNotFound
	}
	return s.details(ctx, userId, j)
}

func (s *RepositoryStub) CreateJob(ctx context.Context, userId string, job Job) (Job, error) {
	if _, err := s.positions.GetPosition(ctx, userId, job.PositionId); err != nil {
		return Job{}, ErrUnknownPosition
	}
	s.nextId++
	job.Id = s.nextId
	if s.jobs[userId] == nil {
		s.jobs[userId] = make(map[int64]Job)
	}
	s.jobs[userId][job.Id] = job
	return job, nil
}

func (s *RepositoryStub) UpdateJob(ctx context.Context, userId string, job Job) (Job, error) {
	if _, ok := s.jobs[userId][job.Id]; !ok {
		return Job{}, ErrJobNotFound
	}
	if _, err := s.positions.GetPosition(ctx, userId, job.PositionId); err != nil {
		return Job{}, ErrJobNotFound
	}
	s.jobs[userId][job.Id] = job
	return job, nil
}

func (s *RepositoryStub) DeleteJob(ctx context.Context, userId string, id int64) error {
	if _, ok := s.jobs[userId][id]; !ok {
		return ErrJobNotFound
	}
	delete(s.jobs[userId], id)
	return nil
}

func (s *RepositoryStub) CountJobsForPosition(ctx context.Context, userId string, positionId int64) (int, error) {
	count := 0
	for _, j := range s.jobs[userId] {
		if j.PositionId == positionId {
			count++
		}
	}
	return count, nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.jobs = make(map[string]map[int64]Job)
}

func (s *RepositoryStub) details(ctx context.Context, userId string, j Job) (JobDetails, error) {
	p, err := s.positions.GetPosition(ctx, userId, j.PositionId)
	if err != nil {
		return JobDetails{}, err
	}
	return JobDetails{Job: j, PositionName: p.Name, Wage: p.Wage, Payout: j.Hours * p.Wage}, nil
}
