package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/access"
	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

// ZaloService handles webhook events from the chat platform and outbound
// follower messaging. The official account is bound to a single tenant at
// startup; every follower and message is scoped to it.
type ZaloService struct {
	followers ports.FollowerRepository
	messages  ports.MessageRepository
	customers ports.CustomerRepository
	messenger ports.Messenger
	dedup     ports.EventDeduper
	appID     string
	tenantID  uuid.UUID
	logger    zerolog.Logger
}

func NewZaloService(followers ports.FollowerRepository, messages ports.MessageRepository, customers ports.CustomerRepository, messenger ports.Messenger, dedup ports.EventDeduper, appID string, tenantID uuid.UUID, logger zerolog.Logger) *ZaloService {
	return &ZaloService{
		followers: followers,
		messages:  messages,
		customers: customers,
		messenger: messenger,
		dedup:     dedup,
		appID:     appID,
		tenantID:  tenantID,
		logger:    logger,
	}
}

// HandleWebhook processes one verified webhook delivery. Deliveries are
// retried by the platform, so duplicates are suppressed by event id.
func (s *ZaloService) HandleWebhook(ctx context.Context, event ports.WebhookEvent) error {
	if event.AppID != s.appID {
		return domain.ErrInvalidInput
	}

	if event.EventID != "" {
		dup, err := s.dedup.IsDuplicate(ctx, event.EventID)
		if err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.EventID).Msg("dedup check failed, processing anyway")
		} else if dup {
			s.logger.Debug().Str("event_id", event.EventID).Msg("duplicate webhook delivery skipped")
			return nil
		}
	}

	var err error
	switch event.EventName {
	case ports.EventFollow:
		err = s.handleFollow(ctx, event, true)
	case ports.EventUnfollow:
		err = s.handleFollow(ctx, event, false)
	case ports.EventUserSendText:
		err = s.handleUserMessage(ctx, event)
	default:
		s.logger.Debug().Str("event_name", event.EventName).Msg("ignoring unhandled webhook event")
	}
	if err != nil {
		return err
	}

	if event.EventID != "" {
		if err := s.dedup.Mark(ctx, event.EventID); err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.EventID).Msg("failed to mark webhook delivery")
		}
	}
	return nil
}

func (s *ZaloService) handleFollow(ctx context.Context, event ports.WebhookEvent, following bool) error {
	follower := &domain.Follower{
		ID:         uuid.New(),
		TenantID:   s.tenantID,
		ZaloUserID: event.SenderID,
		IsFollower: following,
		FollowedAt: event.Timestamp,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.followers.Upsert(ctx, follower); err != nil {
		return err
	}
	s.logger.Info().Str("zalo_user_id", event.SenderID).Bool("following", following).Msg("follower state updated")
	return nil
}

func (s *ZaloService) handleUserMessage(ctx context.Context, event ports.WebhookEvent) error {
	msg := &domain.ZaloMessage{
		ID:         uuid.New(),
		TenantID:   s.tenantID,
		ZaloUserID: event.SenderID,
		Direction:  domain.MessageIncoming,
		Kind:       "text",
		Text:       event.Text,
		Status:     domain.MessageDelivered,
		SentAt:     event.Timestamp,
		CreatedAt:  time.Now().UTC(),
	}

	// Attach the matching guest record so staff can see who is writing.
	customer, err := s.customers.FindByZaloID(ctx, s.tenantID, event.SenderID)
	switch {
	case err == nil:
		msg.CustomerID = &customer.ID
	case !errors.Is(err, domain.ErrCustomerNotFound):
		s.logger.Warn().Err(err).Str("zalo_user_id", event.SenderID).Msg("customer lookup failed")
	}

	return s.messages.Create(ctx, msg)
}

func (s *ZaloService) ListFollowers(ctx context.Context, actor *domain.User, page ports.ListParams) ([]domain.Follower, int64, error) {
	if err := access.RequireSameTenant(actor, s.tenantID); err != nil {
		return nil, 0, err
	}
	return s.followers.List(ctx, s.tenantID, page.Normalize())
}

// SendMessage sends a text message to a follower and records it. Send
// failures are recorded as failed messages and surfaced to the caller.
func (s *ZaloService) SendMessage(ctx context.Context, actor *domain.User, zaloUserID, text string) error {
	if err := access.RequireSameTenant(actor, s.tenantID); err != nil {
		return err
	}
	if zaloUserID == "" || text == "" {
		return domain.ErrInvalidInput
	}

	follower, err := s.followers.FindByZaloID(ctx, zaloUserID)
	if err != nil {
		return err
	}
	if !follower.IsFollower {
		return domain.ErrFollowerNotFound
	}

	now := time.Now().UTC()
	msg := &domain.ZaloMessage{
		ID:         uuid.New(),
		TenantID:   s.tenantID,
		ZaloUserID: zaloUserID,
		Direction:  domain.MessageOutgoing,
		Kind:       "text",
		Text:       text,
		Status:     domain.MessageSent,
		SentAt:     now,
		CreatedAt:  now,
	}

	sendErr := s.messenger.SendText(ctx, zaloUserID, text)
	if sendErr != nil {
		msg.Status = domain.MessageFailed
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("zalo_user_id", zaloUserID).Msg("failed to record outgoing message")
	}
	return sendErr
}
