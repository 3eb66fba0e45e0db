package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/daterange"
	"github.com/stay-js/job-keeper/pkg/user"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string               `json:"error"`
	Details string               `json:"details,omitempty"`
	Fields  []validation.Problem `json:"fields,omitempty"`
}

// WriteJSON encodes body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// WriteValidationError answers 400 listing every invalid field. Errors that do not carry
// field problems are reported with their message only.
func WriteValidationError(w http.ResponseWriter, err error) {
	var verr validation.Errors
	if errors.As(err, &verr) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: verr.Error(),
			Fields:  verr,
		})
		return
	}
	WriteError(w, http.StatusBadRequest, "Invalid request data", err.Error())
}

// DecodeJSON decodes the request body into v and answers 400 on malformed input.
// It returns false when a response has already been written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debugf("invalid request body: %v", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return false
	}
	return true
}

// PathId parses the named path variable as a positive row id and answers 400 otherwise.
func PathId(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid "+name, "must be a positive integer")
		return 0, false
	}
	return id, true
}

// DateRange reads the optional from/to query parameters.
func DateRange(w http.ResponseWriter, r *http.Request) (*daterange.Range, bool) {
	query := r.URL.Query()
	dates, err := daterange.Parse(query.Get("from"), query.Get("to"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
		return nil, false
	}
	return dates, true
}

// WriteServiceError maps errors every service can return. Callers handle their own sentinel
// errors first.
func WriteServiceError(w http.ResponseWriter, err error) {
	var verr validation.Errors
	switch {
	case errors.Is(err, user.ErrNoUser):
		WriteError(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.As(err, &verr):
		WriteValidationError(w, err)
	default:
		log.Errorf("request failed: %v", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}
