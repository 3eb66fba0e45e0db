package position

import (
	"context"
	"fmt"
	"strings"

	"github.com/stay-js/job-keeper/internal/event_bus"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListPositions(ctx context.Context) ([]Position, error)
	ListPositionsWithHoursWorked(ctx context.Context, dates *daterange.Range) ([]PositionStats, error)
	GetPosition(ctx context.Context, id int64) (Position, error)
	CreatePosition(ctx context.Context, position Position) (Position, error)
	UpdatePosition(ctx context.Context, position Position) (Position, error)
	DeletePosition(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListPositions(ctx context.Context) ([]Position, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListPositions(ctx, userId)
}

func (s *ServiceImpl) ListPositionsWithHoursWorked(ctx context.Context, dates *daterange.Range) ([]PositionStats, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListPositionsWithHoursWorked(ctx, userId, dates)
}

func (s *ServiceImpl) GetPosition(ctx context.Context, id int64) (Position, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetPosition(ctx, userId, id)
}

func (s *ServiceImpl) CreatePosition(ctx context.Context, position Position) (Position, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("failed to get current user: %w", err)
	}
	position, err = normalize(position)
	if err != nil {
		return Position{}, err
	}
	return s.repo.CreatePosition(ctx, userId, position)
}

// UpdatePosition replaces name and wage. A wage change is announced so listeners can react to
// the recomputed payouts of the position's jobs.
func (s *ServiceImpl) UpdatePosition(ctx context.Context, position Position) (Position, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("failed to get current user: %w", err)
	}
	position, err = normalize(position)
	if err != nil {
		return Position{}, err
	}

	current, err := s.repo.GetPosition(ctx, userId, position.Id)
	if err != nil {
		return Position{}, err
	}
	updated, err := s.repo.UpdatePosition(ctx, userId, position)
	if err != nil {
		return Position{}, err
	}

	if current.Wage != updated.Wage && s.eventBus != nil {
		event := event_bus.NewEvent(ctx, event_bus.PositionWageChangedType, event_bus.PositionWageChanged{
			UserId:     userId,
			PositionId: updated.Id,
			OldWage:    current.Wage,
			NewWage:    updated.Wage,
		})
		if err := s.eventBus.Publish(event); err != nil {
			log.Warnf("failed to publish wage change of position %d: %v", updated.Id, err)
		}
	}
	return updated, nil
}

func (s *ServiceImpl) DeletePosition(ctx context.Context, id int64) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeletePosition(ctx, userId, id)
}

func normalize(position Position) (Position, error) {
	position.Name = strings.TrimSpace(position.Name)

	var v validation.Validator
	v.Text("name", position.Name, validation.MaxTextLength)
	if v.Number("wage", position.Wage) {
		v.Check(position.Wage >= 0, "wage", "must not be negative")
	}
	return position, v.Err()
}
