package activities

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// Handler serves the recent-activities listing.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the activities handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// List returns one page of the session user's recent activities.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	query := shared.ParseListQuery(r.URL.Query())

	response, err := h.service.List(r.Context(), userID, query)
	if err != nil {
		h.logger.Error("list activities failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, response)
}

// MountRoutes registers activity endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Get("/recent-activities", h.List)
	})
}
