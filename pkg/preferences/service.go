package preferences

import (
	"context"
	"fmt"
	"strings"

	"github.com/stay-js/job-keeper/internal/cache"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/event_bus"
	"github.com/stay-js/job-keeper/internal/utils"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/format"
	"github.com/stay-js/job-keeper/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type Service interface {
	GetPreferences(ctx context.Context) (Resolved, error)
	UpdatePreferences(ctx context.Context, prefs UserPreferences) (UserPreferences, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	fallback UserPreferences
	cache    *cache.LRU[Resolved]
}

// NewService reads preferences through a per-owner cache. Entries are dropped when a
// preferences.updated event is published for the owner.
func NewService(repo Repository, eventBus *event_bus.EventBus, cfg config.Preferences, clock utils.Clock) *ServiceImpl {
	s := &ServiceImpl{
		repo:     repo,
		eventBus: eventBus,
		fallback: FromConfig(cfg),
		cache:    cache.NewLRU[Resolved](cfg.CacheSize, cfg.CacheTTL, clock),
	}
	event_bus.SubscribeTyped(eventBus, event_bus.PreferencesUpdatedType,
		func(e event_bus.EventT[event_bus.PreferencesUpdated]) error {
			s.cache.Delete(e.Data.UserId)
			return nil
		})
	return s
}

func (s *ServiceImpl) GetPreferences(ctx context.Context) (Resolved, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Resolved{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if cached, ok := s.cache.Get(userId); ok {
		return cached, nil
	}
	version := s.cache.Version(userId)

	prefs, found, err := s.repo.GetUserPreferences(ctx, userId)
	if err != nil {
		return Resolved{}, err
	}
	resolved := Resolved{UserPreferences: prefs}
	if !found {
		log.Debugf("no preferences stored for user %s, using defaults", userId)
		resolved = Resolved{UserPreferences: s.fallback, IsDefault: true}
	}
	if !s.cache.SetIfVersion(userId, version, resolved) {
		log.Tracef("preferences of user %s changed while loading, not caching", userId)
	}
	return resolved, nil
}

func (s *ServiceImpl) UpdatePreferences(ctx context.Context, prefs UserPreferences) (UserPreferences, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return UserPreferences{}, fmt.Errorf("failed to get current user: %w", err)
	}
	prefs, err = normalize(prefs)
	if err != nil {
		return UserPreferences{}, err
	}

	stored, err := s.repo.UpsertUserPreferences(ctx, userId, prefs)
	if err != nil {
		return UserPreferences{}, err
	}
	event := event_bus.NewEvent(ctx, event_bus.PreferencesUpdatedType, event_bus.PreferencesUpdated{UserId: userId})
	if err := s.eventBus.Publish(event); err != nil {
		log.Warnf("failed to publish preferences update: %v", err)
	}
	s.cache.Set(userId, Resolved{UserPreferences: stored})
	return stored, nil
}

func normalize(prefs UserPreferences) (UserPreferences, error) {
	prefs.Currency = strings.ToUpper(strings.TrimSpace(prefs.Currency))
	prefs.Locale = strings.TrimSpace(prefs.Locale)

	var v validation.Validator
	v.Text("currency", prefs.Currency, maxCodeLength)
	v.Text("locale", prefs.Locale, maxCodeLength)
	if prefs.Locale != "" {
		_, err := language.Parse(prefs.Locale)
		v.Check(err == nil, "locale", "must be a language tag such as en-GB")
	}
	v.Check(prefs.Precision >= 0 && prefs.Precision <= format.MaxPrecision, "precision", "must be between 0 and 10")
	return prefs, v.Err()
}
