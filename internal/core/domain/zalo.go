package domain

import (
	"time"

	"github.com/google/uuid"
)

// MessageDirection distinguishes inbound from outbound chat messages.
type MessageDirection string

const (
	MessageIncoming MessageDirection = "incoming"
	MessageOutgoing MessageDirection = "outgoing"
)

// MessageStatus represents the delivery state of an outgoing message.
type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
	MessageFailed    MessageStatus = "failed"
)

// Follower is a chat-platform user who follows the tenant's official account.
type Follower struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	ZaloUserID string     `json:"zalo_user_id"`
	IsFollower bool       `json:"is_follower"`
	FollowedAt time.Time  `json:"followed_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

// ZaloMessage records a chat message exchanged with a follower. CustomerID
// is set when the chat user id matches a guest record in the tenant.
type ZaloMessage struct {
	ID         uuid.UUID        `json:"id"`
	TenantID   uuid.UUID        `json:"tenant_id"`
	CustomerID *uuid.UUID       `json:"customer_id,omitempty"`
	ZaloUserID string           `json:"zalo_user_id"`
	Direction  MessageDirection `json:"direction"`
	Kind       string           `json:"kind"`
	Text       string           `json:"text,omitempty"`
	Status     MessageStatus    `json:"status"`
	SentAt     time.Time        `json:"sent_at"`
	CreatedAt  time.Time        `json:"created_at"`
}

// OAToken is the official-account credential pair used to call the chat API.
// The access token is short-lived and renewed with the refresh token.
type OAToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
