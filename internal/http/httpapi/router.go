package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"subtrack/internal/http/handlers"
	"subtrack/internal/middleware"
)

// NewRouter assembles the full route tree. The country lookup feeds locale
// detection and may be nil when no GeoIP database is configured.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Log),
		middleware.CORS(app.Cfg.AllowedOrigins),
		middleware.I18N(app.Cfg.DefaultLocale, lookup),
		middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	if app.Cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.Cfg.JWTSecret))

		r.Get("/v1/me", app.Me)

		r.Route("/v1/user", func(r chi.Router) {
			// Notifications and usage are shared with admins so they can see
			// their own inbox; account routes stay user-only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("user", "admin"))
				r.Get("/notifications", app.NotificationsList)
				r.Patch("/notifications/{id}/read", app.NotificationRead)
				r.Patch("/notifications/read-all", app.NotificationsReadAll)
				r.Get("/usage-history", app.UsageHistory)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("user"))
				r.Get("/profile", app.ProfileGet)
				r.Put("/profile", app.ProfileUpdate)
				r.Get("/subscription-history", app.SubscriptionHistory)
				r.Get("/stats", app.UserStats)
				r.Delete("/account", app.AccountDelete)
			})
		})

		r.Route("/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))
			r.Post("/notifications", app.NotificationsSend)
			r.Post("/notifications/role", app.NotificationsSendRole)
			r.Get("/dashboard", app.Dashboard)
			r.Get("/analytics/top-plans", app.TopPlans)
			r.Get("/discount-usage", app.DiscountUsage)
			r.Get("/users", app.UsersList)
			r.Patch("/users/{id}/active", app.UserSetActive)
			r.Delete("/users/{id}", app.UserDelete)
			r.Get("/discounts", app.DiscountsList)
			r.Get("/plans", app.PlansList)
			r.Post("/plans", app.PlansCreate)
		})
	})

	return r
}
