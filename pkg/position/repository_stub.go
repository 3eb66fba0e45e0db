package position

import (
	"context"
	"sort"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/pkg/daterange"
)

// RepositoryStub keeps positions in memory. Hours are attached with AddHours so aggregated
// reads can be exercised without a database.
type RepositoryStub struct {
	nextId    int64
	positions map[string]map[int64]Position
	hours     map[int64][]recordedHours
}

type recordedHours struct {
	date  civil.Date
	hours float64
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		positions: make(map[string]map[int64]Position),
		hours:     make(map[int64][]recordedHours),
	}
}

// AddHours records hours worked for a position on a single day.
func (s *RepositoryStub) AddHours(positionId int64, date civil.Date, hours float64) {
	s.hours[positionId] = append(s.hours[positionId], recordedHours{date: date, hours: hours})
}

func (s *RepositoryStub) ListPositions(ctx context.Context, userId string) ([]Position, error) {
	positions := make([]Position, 0, len(s.positions[userId]))
	for _, p := range s.positions[userId] {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Name != positions[j].Name {
			return positions[i].Name < positions[j].Name
		}
		return positions[i].Id < positions[j].Id
	})
	return positions, nil
}

func (s *RepositoryStub) ListPositionsWithHoursWorked(ctx context.Context, userId string, dates *daterange.Range) ([]PositionStats, error) {
	positions, _ := s.ListPositions(ctx, userId)
	stats := make([]PositionStats, 0, len(positions))
	for _, p := range positions {
		entry := PositionStats{Position: p, InUse: len(s.hours[p.Id]) > 0}
		for _, h := range s.hours[p.Id] {
			if dates.Contains(h.date) {
				entry.HoursWorked += h.hours
			}
		}
		entry.Payout = entry.HoursWorked * p.Wage
		stats = append(stats, entry)
	}
	return stats, nil
}

func (s *RepositoryStub) GetPosition(ctx context.Context, userId string, id int64) (Position, error) {
	p, ok := s.positions[userId][id]
	if !ok {
		return Position{}, ErrPositionNotFound
	}
	return p, nil
}

func (s *RepositoryStub) CreatePosition(ctx context.Context, userId string, position Position) (Position, error) {
	s.nextId++
	position.Id = s.nextId
	if s.positions[userId] == nil {
		s.positions[userId] = make(map[int64]Position)
	}
	s.positions[userId][position.Id] = position
	return position, nil
}

func (s *RepositoryStub) UpdatePosition(ctx context.Context, userId string, position Position) (Position, error) {
	if _, ok := s.positions[userId][position.Id]; !ok {
		return Position{}, ErrPositionNotFound
	}
	s.positions[userId][position.Id] = position
	return position, nil
}

func (s *RepositoryStub) DeletePosition(ctx context.Context, userId string, id int64) error {
	if _, ok := s.positions[userId][id]; !ok {
		return ErrPositionNotFound
	}
	if len(s.hours[id]) > 0 {
		return ErrPositionInUse
	}
	delete(s.positions[userId], id)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.positions = make(map[string]map[int64]Position)
	s.hours = make(map[int64][]recordedHours)
}
