package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stay-js/job-keeper/internal/config"
	"github.com/stay-js/job-keeper/internal/rest"
	log "github.com/sirupsen/logrus"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) error {
	r.HandleFunc("/healthz", health(deps.Store)).Methods("GET")
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	if err := authenticated(api, cfg); err != nil {
		return err
	}

	// Positions
	api.HandleFunc("/positions", deps.PositionHandler.ListPositions).Methods("GET")
	api.HandleFunc("/positions/stats", deps.PositionHandler.ListPositionStats).Methods("GET")
	api.HandleFunc("/positions", deps.PositionHandler.CreatePosition).Methods("POST")
	api.HandleFunc("/positions/{id}", deps.PositionHandler.GetPosition).Methods("GET")
	api.HandleFunc("/positions/{id}", deps.PositionHandler.UpdatePosition).Methods("PUT")
	api.HandleFunc("/positions/{id}", deps.PositionHandler.DeletePosition).Methods("DELETE")

	// Jobs
	api.HandleFunc("/jobs", deps.JobHandler.ListJobs).Methods("GET")
	api.HandleFunc("/jobs", deps.JobHandler.CreateJob).Methods("POST")
	api.HandleFunc("/jobs/{id}", deps.JobHandler.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{id}", deps.JobHandler.UpdateJob).Methods("PUT")
	api.HandleFunc("/jobs/{id}", deps.JobHandler.DeleteJob).Methods("DELETE")

	// Expenses
	api.HandleFunc("/expenses", deps.ExpenseHandler.ListExpenses).Methods("GET")
	api.HandleFunc("/expenses", deps.ExpenseHandler.CreateExpense).Methods("POST")
	api.HandleFunc("/expenses/{id}", deps.ExpenseHandler.GetExpense).Methods("GET")
	api.HandleFunc("/expenses/{id}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	api.HandleFunc("/expenses/{id}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Preferences
	api.HandleFunc("/preferences", deps.PreferencesHandler.GetPreferences).Methods("GET")
	api.HandleFunc("/preferences", deps.PreferencesHandler.UpdatePreferences).Methods("PUT")
	api.HandleFunc("/preferences/options", deps.PreferencesHandler.GetOptions).Methods("GET")

	// Stats
	api.HandleFunc("/stats/monthly", deps.StatsHandler.GetMonthlySummary).Methods("GET")
	api.HandleFunc("/stats/range", deps.StatsHandler.GetRangeStats).Methods("GET")
	api.HandleFunc("/stats/month/next", deps.StatsHandler.NextMonth).Methods("GET")
	api.HandleFunc("/stats/month/prev", deps.StatsHandler.PrevMonth).Methods("GET")

	return nil
}

func health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			log.Errorf("health check failed: %v", err)
			rest.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		rest.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
