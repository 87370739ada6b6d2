package domain

import "time"

// NotificationType enumerates notification kinds.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Valid reports whether the type is one of the known values.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// OfferSnapshot is an immutable copy of discount fields embedded in a
// notification at creation time. Later edits to the source discount must not
// alter notifications already sent.
type OfferSnapshot struct {
	ID    string  `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// NotificationData is the free-form payload attached to a notification.
type NotificationData struct {
	Offer *OfferSnapshot `json:"offer,omitempty"`
}

// Notification belongs to exactly one recipient. Its read flag only moves
// false to true, through the owner-scoped mark operations.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Type      NotificationType
	Data      NotificationData
	Read      bool
	CreatedAt time.Time
}
