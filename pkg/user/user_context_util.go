package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserIDKey contextKey = "userId"

var ErrNoUser = errors.New("user not found")

// CurrentId retrieves the current owner id (the identity provider's subject) from the context.
// Returns ErrNoUser if the id is not present in context.
func CurrentId(ctx context.Context) (string, error) {
	id, ok := ctx.Value(UserIDKey).(string)
	if !ok || id == "" {
		log.Trace("user not found in context")
		return "", ErrNoUser
	}
	return id, nil
}

func WithId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}
