package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/vaulta/vaulta/internal/activities"
	"github.com/vaulta/vaulta/internal/events"
	"github.com/vaulta/vaulta/internal/observability"
	"github.com/vaulta/vaulta/internal/pincode"
	"github.com/vaulta/vaulta/internal/products"
	"github.com/vaulta/vaulta/internal/shared"
	"github.com/vaulta/vaulta/internal/transactions"
	"github.com/vaulta/vaulta/internal/users"
	"github.com/vaulta/vaulta/internal/wallet"
	"github.com/vaulta/vaulta/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	UsersHandler        *users.Handler
	ProductsHandler     *products.Handler
	TransactionsHandler *transactions.Handler
	EventsHandler       *events.Handler
	WalletHandler       *wallet.Handler
	PinCodeHandler      *pincode.Handler
	ActivitiesHandler   *activities.Handler
	JobHandler          *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Vaulta defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	loginLimiter := httprate.LimitByIP(params.Config.LoginRateLimit, params.Config.LoginRateWindow)

	r.Route("/api/v1", func(r chi.Router) {
		params.UsersHandler.MountAuthRoutes(r, loginLimiter)
		params.UsersHandler.MountRoutes(r)
		params.ProductsHandler.MountRoutes(r)
		params.TransactionsHandler.MountRoutes(r)
		params.EventsHandler.MountRoutes(r)
		params.WalletHandler.MountRoutes(r)
		params.PinCodeHandler.MountRoutes(r)
		params.ActivitiesHandler.MountRoutes(r)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
