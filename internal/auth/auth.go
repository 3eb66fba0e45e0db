package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/pkg/user"
	log "github.com/sirupsen/logrus"
)

const UserIdHeader = "X-User-Id"

var ErrMissingCredentials = errors.New("missing credentials")

// TokenValidator verifies HS256 bearer tokens and returns their subject as the owner id.
type TokenValidator struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenValidator(cfg config.Auth) (*TokenValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("auth.jwtsecret must be set when auth.mode is jwt")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &TokenValidator{secret: []byte(cfg.JWTSecret), parser: jwt.NewParser(opts...)}, nil
}

func (v *TokenValidator) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := v.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", jwt.ErrTokenInvalidClaims)
	}
	return claims.Subject, nil
}

// Middleware puts the owner id of every request into its context. Requests without valid
// credentials are answered with 401.
func Middleware(cfg config.Auth) (mux.MiddlewareFunc, error) {
	var identify func(r *http.Request) (string, error)
	switch cfg.Mode {
	case config.AuthModeHeader:
		log.Warn("Trusting the X-User-Id header, make sure the server is only reachable through the authenticating proxy")
		identify = fromHeader
	case config.AuthModeJWT, "":
		validator, err := NewTokenValidator(cfg)
		if err != nil {
			return nil, err
		}
		identify = func(r *http.Request) (string, error) {
			token := bearerToken(r)
			if token == "" {
				return "", ErrMissingCredentials
			}
			return validator.Validate(token)
		}
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userId, err := identify(r)
			if err != nil {
				log.Debugf("rejected request to %s: %v", r.URL.Path, err)
				rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}
			next.ServeHTTP(w, r.WithContext(user.WithId(r.Context(), userId)))
		})
	}, nil
}

func fromHeader(r *http.Request) (string, error) {
	userId := strings.TrimSpace(r.Header.Get(UserIdHeader))
	if userId == "" {
		return "", ErrMissingCredentials
	}
	return userId, nil
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
