package wallet

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/pincode"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// Handler serves the wallet endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	activity shared.ActivityLogger
	validate *validator.Validate
}

// NewHandler constructs the wallet handler.
func NewHandler(logger *slog.Logger, service *Service, activity shared.ActivityLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		activity: activity,
		validate: validator.New(),
	}
}

// Balance reveals the wallet balance. The session must have confirmed
// the PIN first.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	if !pincode.Verified(shared.SessionFromContext(r.Context())) {
		httpx.RespondError(w, shared.ErrPinNotConfirmed)
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	resp, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		h.logger.Error("load balance failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// AddMoney tops up the caller's wallet.
func (h *Handler) AddMoney(w http.ResponseWriter, r *http.Request) {
	var req AddMoneyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	resp, err := h.service.AddMoney(r.Context(), userID, req.Amount)
	if err != nil {
		h.logger.Error("add money failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionAddMoney)
	httpx.JSON(w, http.StatusOK, resp)
}

// SendMoney transfers money to another member.
func (h *Handler) SendMoney(w http.ResponseWriter, r *http.Request) {
	var req SendMoneyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	tx, err := h.service.SendMoney(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("send money failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionSendMoney)
	httpx.JSON(w, http.StatusOK, tx)
}

// Statistics backs the dashboard chart and cards.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	resp, err := h.service.Statistics(r.Context(), userID)
	if err != nil {
		h.logger.Error("load statistics failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// MountRoutes registers wallet endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Get("/wallet/balance", h.Balance)
		r.Get("/wallet/statistics", h.Statistics)
		r.Post("/wallet/add-money", h.AddMoney)
		r.Post("/wallet/send-money", h.SendMoney)
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
