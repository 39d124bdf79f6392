// Package metrics defines and registers all custom Prometheus metrics for the
// hotel booking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel_saas"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "inactive"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenVerificationsTotal counts bearer-token checks on protected routes.
// Label:
//   - outcome: "ok" or "rejected"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of access token verifications, by outcome.",
	},
	[]string{"outcome"},
)

// PasswordResetsTotal counts completed password resets.
var PasswordResetsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of successfully consumed password reset tickets.",
	},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
// Label:
//   - channel: booking source (e.g. "direct", "zalo", "walk_in")
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by channel.",
	},
	[]string{"channel"},
)

// BookingTransitionsTotal counts booking status transitions.
// Labels:
//   - status: the new booking status (e.g. "confirmed")
//   - result: "ok" or "invalid"
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions, by target status and result.",
	},
	[]string{"status", "result"},
)

// ── Chat platform metrics ─────────────────────────────────────────────────────

// WebhookEventsTotal counts inbound webhook deliveries.
// Labels:
//   - event: the platform event name (e.g. "follow", "user_send_text")
//   - result: "ok", "duplicate", "invalid_signature", "error"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of chat webhook deliveries, by event name and result.",
	},
	[]string{"event", "result"},
)

// ZaloSendsTotal counts outbound chat messages.
// Labels:
//   - kind: "text" or "booking_notification"
//   - result: "ok" or "error"
var ZaloSendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "zalo_sends_total",
		Help:      "Total number of outbound chat messages, by kind and result.",
	},
	[]string{"kind", "result"},
)

// NotificationQueueDepth tracks the pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
