package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"echo-widget/internal/interfaces"
)

// ConfigHandler serves resolved widget configurations.
type ConfigHandler struct {
	service interfaces.ConfigService
}

func NewConfigHandler(svc interfaces.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: svc}
}

// GetDefaultConfig godoc
// @Summary      Get the default configuration
// @Description  Returns the configuration used when no brand record id is given.
// @Tags         Config
// @Produce      json
// @Success      200  {object}  model.ResolvedConfig
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/config [get]
func (h *ConfigHandler) GetDefaultConfig(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, "")
}

// GetConfig godoc
// @Summary      Get a brand configuration
// @Description  Fetches the brand overlay for the record id, merges it over the defaults and returns the result. Failures fall back to the defaults.
// @Tags         Config
// @Produce      json
// @Param        recordID  path      string  true  "Brand record id"
// @Success      200       {object}  model.ResolvedConfig
// @Failure      500       {object}  ErrorResponse
// @Router       /v1/config/{recordID} [get]
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, chi.URLParam(r, "recordID"))
}

// InvalidateConfig godoc
// @Summary      Drop a cached brand configuration
// @Description  Removes the cached overlay so the next request refetches it.
// @Tags         Config
// @Produce      json
// @Param        recordID  path      string  true  "Brand record id"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /v1/config/{recordID} [delete]
func (h *ConfigHandler) InvalidateConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Invalidate(r.Context(), chi.URLParam(r, "recordID")); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *ConfigHandler) resolve(w http.ResponseWriter, r *http.Request, recordID string) {
	resolved, err := h.service.Resolve(r.Context(), recordID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resolved)
}
