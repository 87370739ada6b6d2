package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"subtrack/internal/domain"
)

type notificationResponse struct {
	ID        string                  `json:"id"`
	Message   string                  `json:"message"`
	Type      string                  `json:"type"`
	Read      bool                    `json:"read"`
	Data      domain.NotificationData `json:"data"`
	Timestamp time.Time               `json:"timestamp"`
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		Data:      n.Data,
		Timestamp: n.CreatedAt,
	}
}

// NotificationsList returns the caller's notifications, newest first, plus an
// unread count over the full set regardless of the page size.
func (a *App) NotificationsList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	items, unread, err := a.Notifications.ListForUser(r.Context(), a.currentUserID(r), limit)
	if err != nil {
		a.domainError(w, err)
		return
	}
	out := make([]notificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationResponse(n))
	}
	a.json(w, http.StatusOK, map[string]any{"notifications": out, "unread_count": unread})
}

func (a *App) NotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "notification id required")
		return
	}
	if err := a.Notifications.MarkRead(r.Context(), a.currentUserID(r), id); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"success": true})
}

func (a *App) NotificationsReadAll(w http.ResponseWriter, r *http.Request) {
	updated, err := a.Notifications.MarkAllRead(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"updated_count": updated})
}

type sendNotificationRequest struct {
	UserIDs []string             `json:"user_ids"`
	Message string               `json:"message"`
	Type    string               `json:"type"`
	Data    sendNotificationData `json:"data"`
	OfferID string               `json:"offer_id"`
}

type sendRoleNotificationRequest struct {
	Role    string               `json:"role"`
	Message string               `json:"message"`
	Type    string               `json:"type"`
	Data    sendNotificationData `json:"data"`
	OfferID string               `json:"offer_id"`
}

type sendNotificationData struct {
	Offer *offerPayload `json:"offer"`
}

type offerPayload struct {
	ID    string  `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// NotificationsSend fans a message out to an explicit recipient list.
// An offer can travel either as data.offer (the caller's own snapshot) or as
// offer_id, which resolves the current discount fields server-side. Either way
// the snapshot is frozen at send time so later edits to the offer never change
// delivered notifications.
func (a *App) NotificationsSend(w http.ResponseWriter, r *http.Request) {
	var req sendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	offer, ok := a.offerFromRequest(w, r, req.Data, req.OfferID)
	if !ok {
		return
	}
	created, err := a.Notifications.SendToUsers(r.Context(), req.UserIDs, req.Message, domain.NotificationType(req.Type), offer)
	a.sendResult(w, created, err)
}

// NotificationsSendRole fans a message out to every active member of a role.
func (a *App) NotificationsSendRole(w http.ResponseWriter, r *http.Request) {
	var req sendRoleNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	offer, ok := a.offerFromRequest(w, r, req.Data, req.OfferID)
	if !ok {
		return
	}
	created, err := a.Notifications.SendToRole(r.Context(), domain.UserRole(req.Role), req.Message, domain.NotificationType(req.Type), offer)
	a.sendResult(w, created, err)
}

// offerFromRequest prefers an inline data.offer payload; only the five
// snapshot fields are copied, anything else a caller tucks into it is dropped.
func (a *App) offerFromRequest(w http.ResponseWriter, r *http.Request, data sendNotificationData, offerID string) (*domain.OfferSnapshot, bool) {
	if o := data.Offer; o != nil {
		return &domain.OfferSnapshot{ID: o.ID, Code: o.Code, Name: o.Name, Type: o.Type, Value: o.Value}, true
	}
	return a.resolveOffer(w, r, offerID)
}

func (a *App) resolveOffer(w http.ResponseWriter, r *http.Request, offerID string) (*domain.OfferSnapshot, bool) {
	if offerID == "" {
		return nil, true
	}
	discount, err := a.Discounts.GetByID(r.Context(), offerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown offer")
			return nil, false
		}
		a.domainError(w, err)
		return nil, false
	}
	snapshot := discount.Snapshot()
	return &snapshot, true
}

func (a *App) sendResult(w http.ResponseWriter, created int, err error) {
	if err != nil {
		// A fan-out interrupted mid-loop already delivered some rows; the
		// count tells the caller how far it got.
		if created > 0 {
			a.json(w, http.StatusInternalServerError, map[string]any{
				"error":         "partial_failure",
				"message":       "some notifications were not delivered",
				"created_count": created,
			})
			return
		}
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"created_count": created})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
