package pincode

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// PinRequest carries a four-digit PIN.
type PinRequest struct {
	PinCode string `json:"pinCode" validate:"required,len=4,numeric"`
}

// Handler serves the PIN endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	activity shared.ActivityLogger
	validate *validator.Validate
}

// NewHandler constructs the pincode handler.
func NewHandler(logger *slog.Logger, service *Service, activity shared.ActivityLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		activity: activity,
		validate: validator.New(),
	}
}

// Set stores a new PIN for the signed-in user.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	if err := h.service.Set(r.Context(), userID, req.PinCode); err != nil {
		h.logger.Error("set pin failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionCreatePinCode)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "pin code saved"})
}

// Confirm checks the submitted PIN and marks the session verified so
// balance reveals stop asking until logout.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	if err := h.service.Confirm(r.Context(), userID, req.PinCode); err != nil {
		h.logger.Warn("confirm pin failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}

	MarkVerified(shared.SessionFromContext(r.Context()))
	h.logActivity(r, activities.ActionConfirmPinCode)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "pin code confirmed"})
}

// MountRoutes registers PIN endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Post("/pin-code", h.Set)
		r.Post("/pin-code/confirm", h.Confirm)
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
