package preferences

import (
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/pkg/format"
)

const maxCodeLength = 16

// UserPreferences decide how an owner's amounts and hours are displayed.
type UserPreferences struct {
	Currency  string
	Locale    string
	Precision int
}

// Resolved is what an owner sees: their stored preferences, or the fallback when they have
// not chosen any yet.
type Resolved struct {
	UserPreferences
	IsDefault bool
}

func (p UserPreferences) Formatters() format.Formatters {
	return format.NewFormatters(format.Preferences(p))
}

func FromConfig(cfg config.Preferences) UserPreferences {
	return UserPreferences{Currency: cfg.Currency, Locale: cfg.Locale, Precision: cfg.Precision}
}
