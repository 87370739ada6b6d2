// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsCreated counts notification rows written by fan-out sends,
	// labelled by notification type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrack_notifications_created_total",
		Help: "Notifications created by fan-out sends.",
	}, []string{"type"})

	// NotificationSends counts send operations, labelled by targeting mode.
	NotificationSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrack_notification_sends_total",
		Help: "Send operations by targeting mode (users or role).",
	}, []string{"mode"})
)
