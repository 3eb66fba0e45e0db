package position

import (
	"errors"
	"net/http"

	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/pkg/format"
	log "github.com/sirupsen/logrus"
)

type PositionDTO struct {
	Id   int64         `json:"id"`
	Name string        `json:"name"`
	Wage format.Number `json:"wage"`
}

type PositionStatsDTO struct {
	Id          int64   `json:"id"`
	Name        string  `json:"name"`
	Wage        float64 `json:"wage"`
	HoursWorked float64 `json:"hoursWorked"`
	Payout      float64 `json:"payout"`
	Deletable   bool    `json:"deletable"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListPositions godoc
// @Summary List positions
// @Description Get all positions of the current user ordered by name
// @Tags Position
// @Produce json
// @Success 200 {array} PositionDTO
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/positions [get]
// @Security BearerAuth
func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing positions")
	positions, err := h.service.ListPositions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]PositionDTO, 0, len(positions))
	for _, p := range positions {
		dtos = append(dtos, toDTO(p))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// ListPositionStats godoc
// @Summary Hours worked and payout per position
// @Description Aggregates the jobs of every position. Both from and to are needed to narrow the range.
// @Tags Position
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} PositionStatsDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/positions/stats [get]
// @Security BearerAuth
func (h *Handler) ListPositionStats(w http.ResponseWriter, r *http.Request) {
	dates, ok := rest.DateRange(w, r)
	if !ok {
		return
	}
	log.Debugf("Listing position stats for %s", dates)

	stats, err := h.service.ListPositionsWithHoursWorked(r.Context(), dates)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]PositionStatsDTO, 0, len(stats))
	for _, s := range stats {
		dtos = append(dtos, PositionStatsDTO{
			Id:          s.Id,
			Name:        s.Name,
			Wage:        s.Wage,
			HoursWorked: s.HoursWorked,
			Payout:      s.Payout,
			Deletable:   s.Deletable(),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetPosition godoc
// @Summary Get a position
// @Tags Position
// @Produce json
// @Param id path int true "Position ID"
// @Success 200 {object} PositionDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/positions/{id} [get]
// @Security BearerAuth
func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	position, err := h.service.GetPosition(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(position))
}

// CreatePosition godoc
// @Summary Create a position
// @Tags Position
// @Accept json
// @Produce json
// @Param position body PositionDTO true "Position"
// @Success 201 {object} PositionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/positions [post]
// @Security BearerAuth
func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating position")
	var dto PositionDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	created, err := h.service.CreatePosition(r.Context(), fromDTO(dto))
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// UpdatePosition godoc
// @Summary Replace name and wage of a position
// @Tags Position
// @Accept json
// @Produce json
// @Param id path int true "Position ID"
// @Param position body PositionDTO true "Position"
// @Success 200 {object} PositionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/positions/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	var dto PositionDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	if dto.Id != 0 && dto.Id != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid position id in request body", "")
		return
	}
	dto.Id = id

	updated, err := h.service.UpdatePosition(r.Context(), fromDTO(dto))
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// DeletePosition godoc
// @Summary Delete a position
// @Description Positions referenced by recorded jobs cannot be deleted.
// @Tags Position
// @Param id path int true "Position ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/positions/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeletePosition(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPositionNotFound):
		rest.WriteError(w, http.StatusNotFound, "Position not found", "")
	case errors.Is(err, ErrPositionInUse):
		rest.WriteError(w, http.StatusConflict, "Position is in use", "Delete or reassign the jobs recorded for this position first")
	default:
		rest.WriteServiceError(w, err)
	}
}

func toDTO(p Position) PositionDTO {
	return PositionDTO{Id: p.Id, Name: p.Name, Wage: format.Number(p.Wage)}
}

func fromDTO(dto PositionDTO) Position {
	return Position{Id: dto.Id, Name: dto.Name, Wage: float64(dto.Wage)}
}
