package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stay-js/job-keeper/internal/auth"
	"github.com/stay-js/job-keeper/internal/config"
	log "github.com/sirupsen/logrus"
)

const RequestIdHeader = "X-Request-Id"

// SetupMiddleware wires the middlewares every route shares. Authentication is added to the
// /api subrouter only.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.Use(requestLogging)
	if cfg.Metrics.Enabled {
		r.Use(deps.Metrics.Middleware)
	}
}

func authenticated(api *mux.Router, cfg config.Application) error {
	middleware, err := auth.Middleware(cfg.Auth)
	if err != nil {
		return err
	}
	api.Use(middleware)
	return nil
}

// requestLogging tags each request with an id, reusing the one set by a proxy.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, requestId)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		entry := log.WithFields(log.Fields{
			"requestId": requestId,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Debug("request handled")
		}
	})
}
