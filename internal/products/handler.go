package products

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
)

// Handler serves the products table endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	activity shared.ActivityLogger
	validate *validator.Validate
}

// NewHandler constructs the products handler.
func NewHandler(logger *slog.Logger, service *Service, activity shared.ActivityLogger) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		activity: activity,
		validate: validator.New(),
	}
}

// List returns the shaped product page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	query := shared.ParseListQuery(r.URL.Query())

	page, err := h.service.List(r.Context(), userID, query)
	if err != nil {
		h.logger.Error("list products failed", "error", err, "userID", userID)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Create stores a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	product, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("create product failed", "error", err)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionAddProduct)
	httpx.JSON(w, http.StatusCreated, product)
}

// Update applies a partial product update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	product, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		h.logger.Error("update product failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionUpdateProduct)
	httpx.JSON(w, http.StatusOK, product)
}

// Delete removes a product.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := shared.UserIDFromContext(r.Context())

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		h.logger.Error("delete product failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}

	h.logActivity(r, activities.ActionDeleteProduct)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// MountRoutes registers product endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireUser)
		r.Get("/products", h.List)
		r.Post("/products", h.Create)
		r.Put("/products/{id}", h.Update)
		r.Delete("/products/{id}", h.Delete)
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
