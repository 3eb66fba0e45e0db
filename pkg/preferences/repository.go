package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stay-js/job-keeper/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetUserPreferences reports found=false when the owner never stored preferences.
	GetUserPreferences(ctx context.Context, userId string) (prefs UserPreferences, found bool, err error)
	UpsertUserPreferences(ctx context.Context, userId string, prefs UserPreferences) (UserPreferences, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetUserPreferences(ctx context.Context, userId string) (UserPreferences, bool, error) {
	query := `SELECT currency, locale, "precision" FROM user_preferences WHERE user_id = $1`

	var p UserPreferences
	err := r.db.QueryRow(ctx, query, userId).Scan(&p.Currency, &p.Locale, &p.Precision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserPreferences{}, false, nil
		}
		err := fmt.Errorf("could not get user preferences: %w", err)
		log.Error(err)
		return UserPreferences{}, false, err
	}
	return p, true, nil
}

// UpsertUserPreferences keeps a single row per owner. A duplicate key reported despite the
// conflict clause is retried once as a plain update.
func (r *RepositoryImpl) UpsertUserPreferences(ctx context.Context, userId string, prefs UserPreferences) (UserPreferences, error) {
	query := `INSERT INTO user_preferences (user_id, currency, locale, "precision")
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_id) DO UPDATE
			  SET currency = EXCLUDED.currency, locale = EXCLUDED.locale, "precision" = EXCLUDED."precision"`

	_, err := r.db.Exec(ctx, query, userId, prefs.Currency, prefs.Locale, prefs.Precision)
	if err != nil && database.IsUniqueViolation(err) {
		log.Warnf("duplicate preferences row for user %s, retrying as update", userId)
		_, err = r.db.Exec(ctx,
			`UPDATE user_preferences SET currency = $2, locale = $3, "precision" = $4 WHERE user_id = $1`,
			userId, prefs.Currency, prefs.Locale, prefs.Precision)
	}
	if err != nil {
		err := fmt.Errorf("could not store user preferences: %w", err)
		log.Error(err)
		return UserPreferences{}, err
	}
	return prefs, nil
}
