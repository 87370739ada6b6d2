package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"subtrack/internal/domain"
)

func (a *App) ProfileGet(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetByID(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

func (a *App) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	user, err := a.Users.UpdateProfile(r.Context(), a.currentUserID(r), req.Name, req.Locale)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

type subscriptionResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	PlanPrice float64   `json:"plan_price"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

func toSubscriptionResponse(s domain.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        s.ID,
		PlanID:    s.PlanID,
		PlanName:  s.PlanName,
		PlanPrice: s.PlanPrice,
		Status:    string(s.Status),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		CreatedAt: s.CreatedAt,
	}
}

func (a *App) SubscriptionHistory(w http.ResponseWriter, r *http.Request) {
	subs, err := a.Subscriptions.ListByUser(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	items := make([]subscriptionResponse, 0, len(subs))
	for _, s := range subs {
		items = append(items, toSubscriptionResponse(s))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// UserStats summarizes the caller's account: current subscription (null when
// none is active), usage over the recent window and unread notifications.
func (a *App) UserStats(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	ctx := r.Context()

	var current *subscriptionResponse
	sub, err := a.Subscriptions.GetActiveForUser(ctx, userID)
	switch {
	case err == nil:
		resp := toSubscriptionResponse(*sub)
		current = &resp
	case !errors.Is(err, domain.ErrNotFound):
		a.domainError(w, err)
		return
	}

	_, usage, err := a.Analytics.UsageSummaryForUser(ctx, userID, 30)
	if err != nil {
		a.domainError(w, err)
		return
	}
	_, unread, err := a.Notifications.ListForUser(ctx, userID, 1)
	if err != nil {
		a.domainError(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"subscription":         current,
		"usage":                usage,
		"unread_notifications": unread,
	})
}

func (a *App) AccountDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Users.Delete(r.Context(), a.currentUserID(r)); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
