package expense

import (
	"errors"
	"net/http"

	"github.com/golang-sql/civil"
	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/internal/validation"
	"github.com/stay-js/job-keeper/pkg/format"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id     int64         `json:"id"`
	Name   string        `json:"name"`
	Amount format.Number `json:"amount"`
	Date   string        `json:"date"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListExpenses godoc
// @Summary List expenses
// @Tags Expense
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} ExpenseDTO
// @Router /api/expenses [get]
// @Security BearerAuth
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	dates, ok := rest.DateRange(w, r)
	if !ok {
		return
	}
	expenses, err := h.service.ListExpenses(r.Context(), dates)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, ToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetExpense godoc
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expenses/{id} [get]
// @Security BearerAuth
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	e, err := h.service.GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(e))
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expenses [post]
// @Security BearerAuth
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating expense")
	var dto ExpenseDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	e, err := fromDTO(dto)
	if err != nil {
		rest.WriteValidationError(w, err)
		return
	}
	created, err := h.service.CreateExpense(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// UpdateExpense godoc
// @Summary Replace an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expenses/{id} [put]
// @Security BearerAuth
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	var dto ExpenseDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	if dto.Id != 0 && dto.Id != id {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id in request body", "")
		return
	}
	dto.Id = id
	e, err := fromDTO(dto)
	if err != nil {
		rest.WriteValidationError(w, err)
		return
	}
	updated, err := h.service.UpdateExpense(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Param id path int true "Expense ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expenses/{id} [delete]
// @Security BearerAuth
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrExpenseNotFound) {
		rest.WriteError(w, http.StatusNotFound, "Expense not found", "")
		return
	}
	rest.WriteServiceError(w, err)
}

func ToDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{Id: e.Id, Name: e.Name, Amount: format.Number(e.Amount), Date: e.Date.String()}
}

func fromDTO(dto ExpenseDTO) (Expense, error) {
	date, err := civil.ParseDate(dto.Date)
	if err != nil {
		return Expense{}, validation.Errors{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}}
	}
	return Expense{Id: dto.Id, Name: dto.Name, Amount: float64(dto.Amount), Date: date}, nil
}
