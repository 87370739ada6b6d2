package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/middleware"
	"subtrack/internal/service"
)

// App bundles the dependencies every handler needs. Handlers stay thin:
// decode, delegate to a service or repository, encode.
type App struct {
	Cfg *infra.Config
	Log zerolog.Logger

	Notifications *service.Notifications
	Analytics     *service.Analytics

	Users         domain.UserRepository
	Plans         domain.PlanRepository
	Subscriptions domain.SubscriptionRepository
	Discounts     domain.DiscountRepository
}

func NewApp(cfg *infra.Config, log zerolog.Logger, notifications *service.Notifications, analytics *service.Analytics, users domain.UserRepository, plans domain.PlanRepository, subscriptions domain.SubscriptionRepository, discounts domain.DiscountRepository) *App {
	return &App{
		Cfg:           cfg,
		Log:           log,
		Notifications: notifications,
		Analytics:     analytics,
		Users:         users,
		Plans:         plans,
		Subscriptions: subscriptions,
		Discounts:     discounts,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// domainError maps sentinel errors onto HTTP statuses. Anything unmapped is a 500.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	default:
		a.Log.Error().Err(err).Msg("unhandled error")
		a.error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
