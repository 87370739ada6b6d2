// Package service holds the notification and analytics cores. Handlers stay
// thin; validation, ordering rules and unit math live here.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"subtrack/internal/domain"
	"subtrack/internal/metrics"
)

// Notifications implements fan-out sends and per-user read-state tracking.
type Notifications struct {
	notifications domain.NotificationRepository
	users         domain.UserRepository
	logger        zerolog.Logger
}

// NewNotifications constructs the notification service.
func NewNotifications(n domain.NotificationRepository, u domain.UserRepository, logger zerolog.Logger) *Notifications {
	return &Notifications{notifications: n, users: u, logger: logger}
}

// SendToUsers creates one notification per recipient, all sharing the same
// message, type and offer snapshot. Returns the number of rows created.
func (s *Notifications) SendToUsers(ctx context.Context, userIDs []string, message string, typ domain.NotificationType, offer *domain.OfferSnapshot) (int, error) {
	ids := dedupIDs(userIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one recipient is required", domain.ErrInvalidInput)
	}
	message, typ, err := validateMessage(message, typ)
	if err != nil {
		return 0, err
	}
	metrics.NotificationSends.WithLabelValues("users").Inc()
	return s.fanOut(ctx, ids, message, typ, offer)
}

// SendToRole resolves the active members of a role once, then fans out to
// them. An empty membership is not an error.
func (s *Notifications) SendToRole(ctx context.Context, role domain.UserRole, message string, typ domain.NotificationType, offer *domain.OfferSnapshot) (int, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	message, typ, err := validateMessage(message, typ)
	if err != nil {
		return 0, err
	}
	ids, err := s.users.ListActiveIDsByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	metrics.NotificationSends.WithLabelValues("role").Inc()
	if len(ids) == 0 {
		return 0, nil
	}
	return s.fanOut(ctx, ids, message, typ, offer)
}

// fanOut writes one row per recipient. The loop is deliberately not wrapped
// in a transaction: a failure mid-way returns the rows created so far with
// the error, and those rows stay delivered.
func (s *Notifications) fanOut(ctx context.Context, ids []string, message string, typ domain.NotificationType, offer *domain.OfferSnapshot) (int, error) {
	data := domain.NotificationData{}
	if offer != nil {
		snapshot := *offer
		data.Offer = &snapshot
	}

	created := 0
	for _, id := range ids {
		n := &domain.Notification{UserID: id, Message: message, Type: typ, Data: data}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Error().Err(err).
				Int("created", created).
				Int("recipients", len(ids)).
				Msg("notification fan-out interrupted")
			metrics.NotificationsCreated.WithLabelValues(string(typ)).Add(float64(created))
			return created, err
		}
		created++
	}
	metrics.NotificationsCreated.WithLabelValues(string(typ)).Add(float64(created))
	return created, nil
}

// ListForUser returns the newest notifications up to limit plus the unread
// count over the user's full set, which can exceed the items returned.
func (s *Notifications) ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, int, error) {
	if limit <= 0 {
		limit = 20
	}
	items, err := s.notifications.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead flips one notification owned by userID. A notification that does
// not exist or belongs to someone else reports not-found either way.
func (s *Notifications) MarkRead(ctx context.Context, userID, notificationID string) error {
	matched, err := s.notifications.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !matched {
		return fmt.Errorf("%w: notification", domain.ErrNotFound)
	}
	return nil
}

// MarkAllRead flips every unread notification owned by userID and returns the
// number updated. Running it again immediately yields 0.
func (s *Notifications) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func validateMessage(message string, typ domain.NotificationType) (string, domain.NotificationType, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", "", fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if typ == "" {
		typ = domain.NotificationInfo
	}
	if !typ.Valid() {
		return "", "", fmt.Errorf("%w: unknown notification type %q", domain.ErrInvalidInput, typ)
	}
	return message, typ, nil
}

func dedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
