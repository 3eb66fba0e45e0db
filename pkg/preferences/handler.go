package preferences

import (
	"net/http"

	"github.com/stay-js/job-keeper/internal/rest"
	"github.com/stay-js/job-keeper/pkg/format"
	log "github.com/sirupsen/logrus"
)

type PreferencesDTO struct {
	Currency  string `json:"currency"`
	Locale    string `json:"locale"`
	Precision int    `json:"precision"`
	// IsDefault is set while the owner has not stored preferences, so the client can prompt once.
	IsDefault bool `json:"isDefault"`
}

type OptionsDTO struct {
	Locales     []string          `json:"locales"`
	Currencies  []string          `json:"currencies"`
	Suggestions map[string]string `json:"suggestions"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetPreferences godoc
// @Summary Get display preferences
// @Description Falls back to the configured defaults with isDefault set when none are stored
// @Tags Preferences
// @Produce json
// @Success 200 {object} PreferencesDTO
// @Router /api/preferences [get]
// @Security BearerAuth
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.service.GetPreferences(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, PreferencesDTO{
		Currency:  resolved.Currency,
		Locale:    resolved.Locale,
		Precision: resolved.Precision,
		IsDefault: resolved.IsDefault,
	})
}

// UpdatePreferences godoc
// @Summary Store display preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param preferences body PreferencesDTO true "Preferences"
// @Success 200 {object} PreferencesDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/preferences [put]
// @Security BearerAuth
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating preferences")
	var dto PreferencesDTO
	if !rest.DecodeJSON(w, r, &dto) {
		return
	}
	stored, err := h.service.UpdatePreferences(r.Context(), UserPreferences{
		Currency:  dto.Currency,
		Locale:    dto.Locale,
		Precision: dto.Precision,
	})
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, PreferencesDTO{
		Currency:  stored.Currency,
		Locale:    stored.Locale,
		Precision: stored.Precision,
	})
}

// GetOptions godoc
// @Summary Locales and currencies offered when choosing preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} OptionsDTO
// @Router /api/preferences/options [get]
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	locales := format.SupportedLocales()
	suggestions := make(map[string]string, len(locales))
	for _, l := range locales {
		suggestions[l], _ = format.SuggestCurrency(l)
	}
	rest.WriteJSON(w, http.StatusOK, OptionsDTO{
		Locales:     locales,
		Currencies:  format.SupportedCurrencies(),
		Suggestions: suggestions,
	})
}
