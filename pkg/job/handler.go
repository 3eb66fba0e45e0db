package job

import (
	"errors"
	"net/http"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/format"
	log "github.com/sirupsen/logrus"
)

type JobDTO struct {
	Id         int64         `json:"id"`
	Date       string        `json:"date"`
	Location   string        `json:"location"`
	Event      string        `json:"event,omitempty"`
	Hours      format.Number `json:"hours"`
	PositionId int64         `json:"positionId"`
}

type JobDetailsDTO struct {
	JobDTO
	PositionName string  `json:"positionName"`
	Wage         float64 `json:"wage"`
	Payout       float64 `json:"payout"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListJobs godoc
// @Summary List jobs
// @Description Jobs of the current user ordered by date, with position name, wage and payout
// @Tags Job
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Param q query string false "Fuzzy search over location, event and position"
// @Success 200 {array} JobDetailsDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/jobs [get]
// @Security BearerAuth
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	dates, ok := rest.DateRange(w, r)
	if !ok {
		return
	}
	filter := Filter{Dates: dates, Query: r.URL.Query().Get("q")}
	log.Debugf("Listing jobs for %s", dates)

	jobs, err := h.service.ListJobs(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]JobDetailsDTO, 0, len(jobs))
	for _, j := range jobs {
		dtos = append(dtos, DetailsToDTO(j))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetJob godoc
// @Summary Get a job
// @Tags Job
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} JobDetailsDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/jobs/{id} [get]
// @Security BearerAuth
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	job, err := h.service.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, DetailsToDTO(job))
}

// CreateJob godoc
// @Summary Record a job
// @Description Requires at least one position.
// @Tags Job
// @Accept json
// @Produce json
// @Param job body JobDTO true "Job"
// @Success 201 {object} JobDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse "No positions yet"
// @Router /api/jobs [post]
// @Security BearerAuth
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating job")
	var dto JobDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	job := fromDTO(dto)
	created, err := h.service.CreateJob(r.Context(), job)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// UpdateJob godoc
// @Summary Replace a job
// @Tags Job
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param job body JobDTO true "Job"
// @Success 200 {object} JobDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/jobs/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	var dto JobDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	if dto.Id != 0 && dto.Id != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid job id in request body", "")
		return
	}
	dto.Id = id
	job := fromDTO(dto)

	updated, err := h.service.UpdateJob(r.Context(), job)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// DeleteJob godoc
// @Summary Delete a job
// @Tags Job
// @Param id path int true "Job ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/jobs/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteJob(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrJobNotFound):
		rest.WriteError(w, http.StatusNotFound, "Job not found", "")
	case errors.Is(err, ErrNoPositions):
		rest.WriteError(w, http.StatusConflict, "No positions yet", err.Error())
	case errors.Is(err, ErrUnknownPosition):
		rest.WriteValidationError(w, validation.Errors{{Field: "positionId", Message: "unknown position"}})
	default:
		rest.WriteServiceError(w, err)
	}
}

func ToDTO(j Job) JobDTO {
	return JobDTO{
		Id:         j.Id,
		Date:       j.Date.String(),
		Location:   j.Location,
		Event:      j.Event,
		Hours:      format.Number(j.Hours),
		PositionId: j.PositionId,
	}
}

func DetailsToDTO(d JobDetails) JobDetailsDTO {
	return JobDetailsDTO{
		JobDTO:       ToDTO(d.Job),
		PositionName: d.PositionName,
		Wage:         d.Wage,
		Payout:       d.Payout,
	}
}

// fromDTO leaves Date zero when it cannot be parsed, so the service reports it with the other
// field problems.
func fromDTO(dto JobDTO) Job {
	date, err := civil.ParseDate(dto.Date)
	if err != nil {
		date = civil.Date{}
	}
	return Job{
		Id:         dto.Id,
		Date:       date,
		Location:   dto.Location,
		Event:      dto.Event,
		Hours:      float64(dto.Hours),
		PositionId: dto.PositionId,
	}
}
