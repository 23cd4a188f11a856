package transactions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// Handler serves the transactions table endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	activity shared.ActivityLogger
	validate *validator.Validate
}

// NewHandler constructs the transactions handler.
func NewHandler(logger *slog.Logger, service *Service, activity shared.ActivityLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		activity: activity,
		validate: validator.New(),
	}
}

// List returns the active and archived buckets shaped by the query.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	query := shared.ParseListQuery(r.URL.Query())

	resp, err := h.service.List(r.Context(), userID, query)
	if err != nil {
		h.logger.Error("list transactions failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Update applies a partial transaction edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTransactionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	tx, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		h.logger.Error("update transaction failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionUpdateTransaction)
	httpx.JSON(w, http.StatusOK, tx)
}

// Archive moves a transaction into the history bucket.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := shared.UserIDFromContext(r.Context())

	tx, err := h.service.Archive(r.Context(), userID, id)
	if err != nil {
		h.logger.Error("archive transaction failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionDeleteTransaction)
	httpx.JSON(w, http.StatusOK, tx)
}

// MountRoutes registers transaction endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Get("/transactions", h.List)
		r.Put("/transactions/{id}", h.Update)
		r.Delete("/transactions/{id}", h.Archive)
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
