package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ratewise/ratewise-backend/api/controllers"
	"github.com/ratewise/ratewise-backend/api/middleware"
	"github.com/ratewise/ratewise-backend/internal/auth"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/db"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	"github.com/ratewise/ratewise-backend/pkg/logger"
	"github.com/ratewise/ratewise-backend/pkg/metrics"
	"github.com/ratewise/ratewise-backend/pkg/redis"
)

// Dependencies bundles everything the router needs; cmd/api builds one after
// wiring the services.
type Dependencies struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            *db.Client
	Redis         *redis.Client
	HTTPMetrics   *metrics.HTTPMetrics
	MetricsServer http.Handler

	AuthService   auth.Service
	StoreService  stores.Service
	UserService   users.Service
	RatingService ratings.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	metricsHandler := deps.MetricsServer
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, deps.Redis, logg)).
			Post("/signup", controllers.AuthSignup(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoresList(deps.StoreService, logg))
			r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
				Post("/", controllers.StoreCreate(deps.StoreService, logg))
			r.With(middleware.RequireRole(logg, enums.RoleNormal)).
				Post("/rating", controllers.RatingSubmit(deps.RatingService, logg))
			r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
				Get("/stats", controllers.StoresStats(deps.StoreService, logg))
			r.With(middleware.RequireRole(logg, enums.RoleStoreOwner)).
				Get("/dashboard", controllers.StoreDashboard(deps.StoreService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
				Get("/", controllers.UsersList(deps.UserService, logg))
			r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
				Post("/", controllers.UserCreate(deps.UserService, logg))
			r.Put("/password", controllers.AuthChangePassword(deps.AuthService, logg))
		})
	})

	return r
}
