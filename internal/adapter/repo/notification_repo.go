package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// NotificationRepositoryPG implements domain.NotificationRepository backed by
// PostgreSQL. The data payload is stored as jsonb so the offer snapshot stays
// frozen at send time.
type NotificationRepositoryPG struct {
	db infra.SQLExecutor
}

// NewNotificationRepository creates a new NotificationRepositoryPG.
func NewNotificationRepository(db infra.SQLExecutor) *NotificationRepositoryPG {
	return &NotificationRepositoryPG{db: db}
}

// Create inserts one notification row and fills in the generated id and timestamp.
func (r *NotificationRepositoryPG) Create(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("marshal notification data: %w", err)
	}
	row := r.db.QueryRow(ctx, sqlinline.QInsertNotification, n.UserID, n.Message, n.Type, payload)
	return row.Scan(&n.ID, &n.CreatedAt)
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListNotificationsByUser, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var payload []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &payload, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &n.Data); err != nil {
				return nil, fmt.Errorf("unmarshal notification data: %w", err)
			}
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// CountUnread returns the user's unread count over the full notification set.
func (r *NotificationRepositoryPG) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, sqlinline.QCountUnreadNotifications, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flips one notification owned by userID and reports whether a row matched.
func (r *NotificationRepositoryPG) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	tag, err := r.db.Exec(ctx, sqlinline.QMarkNotificationRead, userID, notificationID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkAllRead flips every unread notification owned by userID.
func (r *NotificationRepositoryPG) MarkAllRead(ctx context.Context, userID string) (int, error) {
	tag, err := r.db.Exec(ctx, sqlinline.QMarkAllNotificationsRead, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

var _ domain.NotificationRepository = (*NotificationRepositoryPG)(nil)
