package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/domain"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type stubFollowerRepo struct {
	followers map[string]*domain.Follower
}

func newStubFollowerRepo(followers ...*domain.Follower) *stubFollowerRepo {
	r := &stubFollowerRepo{followers: make(map[string]*domain.Follower)}
	for _, f := range followers {
		r.followers[f.ZaloUserID] = f
	}
	return r
}

func (r *stubFollowerRepo) FindByZaloID(_ context.Context, zaloUserID string) (*domain.Follower, error) {
	f, ok := r.followers[zaloUserID]
	if !ok {
		return nil, domain.ErrFollowerNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFollowerRepo) List(context.Context, uuid.UUID, ports.ListParams) ([]domain.Follower, int64, error) {
	return nil, 0, nil
}

func (r *stubFollowerRepo) Upsert(_ context.Context, f *domain.Follower) error {
	clone := *f
	r.followers[f.ZaloUserID] = &clone
	return nil
}

type stubMessageRepo struct {
	created []domain.ZaloMessage
}

func (r *stubMessageRepo) Create(_ context.Context, msg *domain.ZaloMessage) error {
	r.created = append(r.created, *msg)
	return nil
}

func (r *stubMessageRepo) ListByZaloID(context.Context, string, ports.ListParams) ([]domain.ZaloMessage, int64, error) {
	return nil, 0, nil
}

type stubMessenger struct {
	sent    []string
	sendErr error
}

func (m *stubMessenger) SendText(_ context.Context, zaloUserID, text string) error {
	m.sent = append(m.sent, text)
	return m.sendErr
}

func (m *stubMessenger) SendBookingNotification(context.Context, ports.BookingNotification) error {
	return nil
}

type stubDeduper struct {
	seen map[string]bool
}

func newStubDeduper() *stubDeduper { return &stubDeduper{seen: make(map[string]bool)} }

func (d *stubDeduper) IsDuplicate(_ context.Context, eventID string) (bool, error) {
	return d.seen[eventID], nil
}

func (d *stubDeduper) Mark(_ context.Context, eventID string) error {
	d.seen[eventID] = true
	return nil
}

type zaloFixture struct {
	svc       *ZaloService
	followers *stubFollowerRepo
	messages  *stubMessageRepo
	messenger *stubMessenger
	tenantID  uuid.UUID
}

func newZaloFixture(customers ...*domain.Customer) *zaloFixture {
	tenantID := uuid.New()
	for _, c := range customers {
		c.TenantID = tenantID
	}
	followers := newStubFollowerRepo()
	messages := &stubMessageRepo{}
	messenger := &stubMessenger{}
	svc := NewZaloService(followers, messages, newStubCustomerRepo(customers...),
		messenger, newStubDeduper(), "app-1", tenantID, zerolog.Nop())
	return &zaloFixture{
		svc:       svc,
		followers: followers,
		messages:  messages,
		messenger: messenger,
		tenantID:  tenantID,
	}
}

func textEvent(sender, text, eventID string) ports.WebhookEvent {
	return ports.WebhookEvent{
		AppID:     "app-1",
		EventName: ports.EventUserSendText,
		EventID:   eventID,
		Timestamp: time.Now().UTC(),
		SenderID:  sender,
		Text:      text,
	}
}

func TestZaloService_HandleWebhook_MessageLinksCustomer(t *testing.T) {
	guest := &domain.Customer{ID: uuid.New(), FullName: "Guest", ZaloUserID: "zalo-42"}
	f := newZaloFixture(guest)

	if err := f.svc.HandleWebhook(context.Background(), textEvent("zalo-42", "hello", "msg-1")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if len(f.messages.created) != 1 {
		t.Fatalf("expected 1 message, got %d", len(f.messages.created))
	}
	msg := f.messages.created[0]
	if msg.CustomerID == nil || *msg.CustomerID != guest.ID {
		t.Fatalf("customer id = %v, want %s", msg.CustomerID, guest.ID)
	}
	if msg.Direction != domain.MessageIncoming || msg.Text != "hello" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestZaloService_HandleWebhook_MessageFromUnknownSender(t *testing.T) {
	f := newZaloFixture()

	if err := f.svc.HandleWebhook(context.Background(), textEvent("stranger", "hi", "msg-2")); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if len(f.messages.created) != 1 {
		t.Fatalf("expected 1 message, got %d", len(f.messages.created))
	}
	if f.messages.created[0].CustomerID != nil {
		t.Fatalf("expected no customer link, got %v", f.messages.created[0].CustomerID)
	}
}

func TestZaloService_HandleWebhook_DuplicateDeliverySkipped(t *testing.T) {
	f := newZaloFixture()
	event := textEvent("zalo-42", "hello", "msg-3")

	if err := f.svc.HandleWebhook(context.Background(), event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := f.svc.HandleWebhook(context.Background(), event); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	if len(f.messages.created) != 1 {
		t.Fatalf("expected 1 message after duplicate delivery, got %d", len(f.messages.created))
	}
}

func TestZaloService_HandleWebhook_WrongAppID(t *testing.T) {
	f := newZaloFixture()
	event := textEvent("zalo-42", "hello", "msg-4")
	event.AppID = "someone-else"

	if err := f.svc.HandleWebhook(context.Background(), event); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
	if len(f.messages.created) != 0 {
		t.Fatalf("no message expected, got %d", len(f.messages.created))
	}
}

func TestZaloService_HandleWebhook_FollowUpsertsFollower(t *testing.T) {
	f := newZaloFixture()

	event := ports.WebhookEvent{
		AppID:     "app-1",
		EventName: ports.EventFollow,
		EventID:   "follow:zalo-9",
		Timestamp: time.Now().UTC(),
		SenderID:  "zalo-9",
	}
	if err := f.svc.HandleWebhook(context.Background(), event); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	follower, err := f.followers.FindByZaloID(context.Background(), "zalo-9")
	if err != nil {
		t.Fatalf("follower not recorded: %v", err)
	}
	if !follower.IsFollower || follower.TenantID != f.tenantID {
		t.Fatalf("unexpected follower %+v", follower)
	}
}
