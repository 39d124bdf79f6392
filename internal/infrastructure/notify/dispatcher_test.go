package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type recordingMessenger struct {
	mu   sync.Mutex
	sent []ports.BookingNotification
	done chan struct{}
	want int
}

func (m *recordingMessenger) SendText(context.Context, string, string) error { return nil }

func (m *recordingMessenger) SendBookingNotification(_ context.Context, n ports.BookingNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	if len(m.sent) == m.want {
		close(m.done)
	}
	return nil
}

func TestDispatcher_DeliversAll(t *testing.T) {
	messenger := &recordingMessenger{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, messenger, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i, user := range []string{"u1", "u2", "u1"} {
		d.Enqueue(ports.BookingNotification{ZaloUserID: user, BookingNumber: "BK-0000000" + string(rune('1'+i))})
	}

	select {
	case <-messenger.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notifications")
	}
}

func TestDispatcher_SameRecipientSameWorker(t *testing.T) {
	d := NewDispatcher(4, &recordingMessenger{done: make(chan struct{}), want: 0}, zerolog.Nop())
	first := d.shardIndex("follower-abc")
	for i := 0; i < 10; i++ {
		if d.shardIndex("follower-abc") != first {
			t.Fatal("shard index not deterministic")
		}
	}
}
