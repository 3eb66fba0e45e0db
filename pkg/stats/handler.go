package stats

import (
	"fmt"
	"net/http"

	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/pkg/expense"
	"github.com/stay-js/job-keeper/pkg/job"
	log "github.com/sirupsen/logrus"
)

type PositionSubtotalDTO struct {
	PositionId  int64   `json:"positionId"`
	Name        string  `json:"name"`
	HoursWorked float64 `json:"hoursWorked"`
	Wage        float64 `json:"wage"`
	Payout      float64 `json:"payout"`
}

type TotalsDTO struct {
	Hours    float64 `json:"hours"`
	Payout   float64 `json:"payout"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

type FormattedTotalsDTO struct {
	Hours    string `json:"hours"`
	Payout   string `json:"payout"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

type MonthlySummaryDTO struct {
	Month     Month                 `json:"month"`
	From      string                `json:"from"`
	To        string                `json:"to"`
	Jobs      []job.JobDetailsDTO   `json:"jobs"`
	Expenses  []expense.ExpenseDTO  `json:"expenses"`
	Positions []PositionSubtotalDTO `json:"positions"`
	Totals    TotalsDTO             `json:"totals"`
	Formatted FormattedTotalsDTO    `json:"formatted"`
}

type RangeStatsDTO struct {
	From      string                `json:"from,omitempty"`
	To        string                `json:"to,omitempty"`
	Positions []PositionSubtotalDTO `json:"positions"`
	Hours     float64               `json:"hours"`
	Payout    float64               `json:"payout"`
}

type Handler struct {
	service   Service
	renderers Renderers
}

func NewHandler(service Service, renderers ...Renderer) *Handler {
	return &Handler{service: service, renderers: renderers}
}

// GetMonthlySummary godoc
// @Summary Monthly summary
// @Description Jobs, expenses, per-position subtotals and totals of a month. Answers CSV or XLSX when asked for by Accept.
// @Tags Stats
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Year, defaults to the current one"
// @Param month query int false "Month 0-11, defaults to the current one"
// @Success 200 {object} MonthlySummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/stats/monthly [get]
// @Security BearerAuth
func (h *Handler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, ok := h.parseMonth(w, r)
	if !ok {
		return
	}
	log.Debugf("Getting summary of %s", month)

	summary, err := h.service.MonthlySummary(r.Context(), month)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	if renderer := h.renderers.For(r.Header.Get("Accept")); renderer != nil {
		w.Header().Set("Content-Type", renderer.ContentType())
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="jobkeeper-%s.%s"`, month, renderer.FileExtension()))
		if err := renderer.Render(w, summary); err != nil {
			log.Errorf("failed to render summary: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, summaryToDTO(summary))
}

// GetRangeStats godoc
// @Summary Hours and payout per position for a date range
// @Tags Stats
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} RangeStatsDTO
// @Router /api/stats/range [get]
// @Security BearerAuth
func (h *Handler) GetRangeStats(w http.ResponseWriter, r *http.Request) {
	dates, ok := rest.DateRange(w, r)
	if !ok {
		return
	}
	stats, err := h.service.RangeStats(r.Context(), dates)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	dto := RangeStatsDTO{Hours: stats.Hours, Payout: stats.Payout, Positions: make([]PositionSubtotalDTO, 0, len(stats.Positions))}
	if dates != nil {
		dto.From, dto.To = dates.From.String(), dates.To.String()
	}
	for _, p := range stats.Positions {
		dto.Positions = append(dto.Positions, PositionSubtotalDTO{
			PositionId:  p.Id,
			Name:        p.Name,
			HoursWorked: p.HoursWorked,
			Wage:        p.Wage,
			Payout:      p.Payout,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

// NextMonth godoc
// @Summary Month after the given one
// @Tags Stats
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month 0-11"
// @Success 200 {object} Month
// @Router /api/stats/month/next [get]
func (h *Handler) NextMonth(w http.ResponseWriter, r *http.Request) {
	if month, ok := h.parseMonth(w, r); ok {
		rest.WriteJSON(w, http.StatusOK, month.Next())
	}
}

// PrevMonth godoc
// @Summary Month before the given one
// @Tags Stats
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month 0-11"
// @Success 200 {object} Month
// @Router /api/stats/month/prev [get]
func (h *Handler) PrevMonth(w http.ResponseWriter, r *http.Request) {
	if month, ok := h.parseMonth(w, r); ok {
		rest.WriteJSON(w, http.StatusOK, month.Prev())
	}
}

func (h *Handler) parseMonth(w http.ResponseWriter, r *http.Request) (Month, bool) {
	query := r.URL.Query()
	month, err := ParseMonth(query.Get("year"), query.Get("month"), h.service.CurrentMonth())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return Month{}, false
	}
	return month, true
}

func summaryToDTO(s MonthlySummary) MonthlySummaryDTO {
	dto := MonthlySummaryDTO{
		Month:     s.Month,
		From:      s.Dates.From.String(),
		To:        s.Dates.To.String(),
		Jobs:      make([]job.JobDetailsDTO, 0, len(s.Jobs)),
		Expenses:  make([]expense.ExpenseDTO, 0, len(s.Expenses)),
		Positions: make([]PositionSubtotalDTO, 0, len(s.Positions)),
		Totals:    TotalsDTO(s.Totals),
		Formatted: FormattedTotalsDTO(s.Formatted),
	}
	for _, j := range s.Jobs {
		dto.Jobs = append(dto.Jobs, job.DetailsToDTO(j))
	}
	for _, e := range s.Expenses {
		dto.Expenses = append(dto.Expenses, expense.ToDTO(e))
	}
	for _, p := range s.Positions {
		dto.Positions = append(dto.Positions, PositionSubtotalDTO(p))
	}
	return dto
}
