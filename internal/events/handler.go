package events

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// Handler serves the calendar endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	activity shared.ActivityLogger
	validate *validator.Validate
}

// NewHandler constructs the events handler.
func NewHandler(logger *slog.Logger, service *Service, activity shared.ActivityLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		activity: activity,
		validate: validator.New(),
	}
}

// List returns every event for the signed-in user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())

	events, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list events failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"events": events})
}

// Create stores a new event.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	event, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("create event failed", "error", err)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionAddEvent)
	httpx.JSON(w, http.StatusCreated, event)
}

// Update applies a partial event edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateEventRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	event, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		h.logger.Error("update event failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionUpdateEvent)
	httpx.JSON(w, http.StatusOK, event)
}

// Delete removes an event.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := shared.UserIDFromContext(r.Context())

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.logger.Error("delete event failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionDeleteEvent)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// MountRoutes registers calendar endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Get("/events", h.List)
		r.Post("/events", h.Create)
		r.Put("/events/{id}", h.Update)
		r.Delete("/events/{id}", h.Delete)
	})
}

func (h *Handler) logActivity(r *http.Request, action string) {
	if h.activity == nil {
		return
	}
	sess := shared.SessionFromContext(r.Context())
	email := ""
	if sess != nil {
		email = sess.Get("email")
	}
	if err := h.activity.Log(r.Context(), shared.UserIDFromContext(r.Context()), email, action); err != nil {
		h.logger.Warn("record activity failed", "error", err, "action", action)
	}
}
