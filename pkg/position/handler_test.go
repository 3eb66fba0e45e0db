package position

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/gorilla/mux"
	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/pkg/format"
	"github.com/stay-js/job-keeper/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/positions", handler.ListPositions).Methods("GET")
	router.HandleFunc("/api/positions", handler.CreatePosition).Methods("POST")
	router.HandleFunc("/api/positions/stats", handler.ListPositionStats).Methods("GET")
	router.HandleFunc("/api/positions/{id}", handler.GetPosition).Methods("GET")
	router.HandleFunc("/api/positions/{id}", handler.UpdatePosition).Methods("PUT")
	router.HandleFunc("/api/positions/{id}", handler.DeletePosition).Methods("DELETE")
	return router, teardown
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(user.WithId(req.Context(), "user-1"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_CreatePosition(t *testing.T) {
	t.Run("should create a position", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()

		// when
		rr := serve(router, "POST", "/api/positions", `{"name":"Bartender","wage":20}`)

		// then
		require.Equal(t, http.StatusCreated, rr.Code)
		var dto PositionDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dto))
		assert.NotZero(t, dto.Id)
		assert.Equal(t, "Bartender", dto.Name)
		assert.Equal(t, format.Number(20), dto.Wage)
	})

	t.Run("should list invalid fields", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()

		rr := serve(router, "POST", "/api/positions", `{"name":"","wage":-5}`)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var body rest.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Len(t, body.Fields, 2)
	})

	t.Run("should answer unauthorized without user", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()

		req := httptest.NewRequest("POST", "/api/positions", strings.NewReader(`{"name":"Bartender","wage":20}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestHandler_ListPositionStats(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()

	// given
	created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
	positionRepoStub.AddHours(created.Id, civil.Date{Year: 2024, Month: 7, Day: 10}, 5)
	positionRepoStub.AddHours(created.Id, civil.Date{Year: 2024, Month: 8, Day: 10}, 1)

	// when
	rr := serve(router, "GET", "/api/positions/stats?from=2024-07-01&to=2024-07-31", "")

	// then
	require.Equal(t, http.StatusOK, rr.Code)
	var stats []PositionStatsDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, 5.0, stats[0].HoursWorked)
	assert.Equal(t, 100.0, stats[0].Payout)
	assert.False(t, stats[0].Deletable)

	rr = serve(router, "GET", "/api/positions/stats?from=2024-07-01&to=july", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_UpdatePosition(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()

	created, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})

	rr := serve(router, "PUT", "/api/positions/999", `{"name":"Bartender","wage":25}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = serve(router, "PUT", "/api/positions/"+itoa(created.Id), `{"id":999,"name":"Bartender","wage":25}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, "PUT", "/api/positions/"+itoa(created.Id), `{"name":"Bartender","wage":"25,0"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	stored, _ := service.GetPosition(ctx, created.Id)
	assert.Equal(t, 25.0, stored.Wage)
}

func TestHandler_DeletePosition(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()

	// given
	used, _ := service.CreatePosition(ctx, Position{Name: "Bartender", Wage: 20})
	unused, _ := service.CreatePosition(ctx, Position{Name: "Waiter", Wage: 15})
	positionRepoStub.AddHours(used.Id, civil.Date{Year: 2024, Month: 7, Day: 10}, 5)

	// then
	assert.Equal(t, http.StatusConflict, serve(router, "DELETE", "/api/positions/"+itoa(used.Id), "").Code)
	assert.Equal(t, http.StatusNoContent, serve(router, "DELETE", "/api/positions/"+itoa(unused.Id), "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "DELETE", "/api/positions/"+itoa(unused.Id), "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, "DELETE", "/api/positions/abc", "").Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
