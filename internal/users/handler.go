package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// Handler serves authentication and member endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	activity shared.ActivityLogger
	validate *validator.Validate
}

// NewHandler constructs the users handler.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, activity shared.ActivityLogger) *Handler {
	if activity == nil {
		activity = shared.NopActivityLogger{}
	}
	return &Handler{
		logger:   logger,
		service:  service,
		sessions: sessions,
		activity: activity,
		validate: validator.New(),
	}
}

// Login authenticates credentials and binds the session to the user.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", shared.UserSafeMessage(err))
			return
		}
		h.logger.Error("login failed", "error", err)
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		sess.SetUser(user.ID)
		sess.Set("email", user.Email)
	}

	if err := h.activity.Log(r.Context(), user.ID, user.Email, activities.ActionLogin); err != nil {
		h.logger.Warn("record activity failed", "error", err, "action", activities.ActionLogin)
	}

	httpx.JSON(w, http.StatusOK, Profile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		HasPin:    user.HasPinCode(),
	})
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.sessions.Destroy(sess)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the current session user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		h.logger.Error("load profile failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

// Members lists transfer recipients for the current user.
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	members, err := h.service.Members(r.Context(), userID)
	if err != nil {
		h.logger.Error("list members failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if members == nil {
		members = []Member{}
	}
	httpx.JSON(w, http.StatusOK, members)
}
