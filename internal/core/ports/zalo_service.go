package ports

import (
	"context"
	"time"

	"github.com/stayhub/hotel-saas/internal/core/domain"
)

// Webhook event names delivered by the chat platform.
const (
	EventFollow       = "follow"
	EventUnfollow     = "unfollow"
	EventUserSendText = "user_send_text"
)

// WebhookEvent is the parsed payload of one webhook delivery. EventID is
// used for duplicate-delivery suppression.
type WebhookEvent struct {
	AppID     string
	EventName string
	EventID   string
	Timestamp time.Time
	SenderID  string
	Text      string
}

// BookingNotification is the template payload sent when a booking is confirmed.
type BookingNotification struct {
	ZaloUserID    string
	BookingNumber string
	HotelName     string
	CheckIn       time.Time
	CheckOut      time.Time
	TotalAmount   float64
}

// Messenger is the outbound chat-platform client. Implementations apply a
// request timeout and bounded retry with backoff; they must never block the
// token issuance or verification path.
type Messenger interface {
	SendText(ctx context.Context, zaloUserID, text string) error
	SendBookingNotification(ctx context.Context, n BookingNotification) error
}

// EventDeduper suppresses duplicate webhook deliveries.
type EventDeduper interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// NotificationDispatcher queues booking notifications for asynchronous
// delivery. Enqueue never blocks the caller's request path.
type NotificationDispatcher interface {
	Enqueue(n BookingNotification)
}

// ZaloService handles inbound webhook events and follower messaging.
type ZaloService interface {
	HandleWebhook(ctx context.Context, event WebhookEvent) error
	ListFollowers(ctx context.Context, actor *domain.User, page ListParams) ([]domain.Follower, int64, error)
	SendMessage(ctx context.Context, actor *domain.User, zaloUserID, text string) error
}
