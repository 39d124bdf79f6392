package notify

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/api/metrics"
	"github.com/stayhub/hotel-saas/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher delivers booking notifications through a fixed set of workers
// using consistent hashing on the chat user id, so messages to the same
// follower are sent in order. Enqueue never blocks the booking flow beyond
// channelBuffer capacity.
type Dispatcher struct {
	workers   []chan ports.BookingNotification
	messenger ports.Messenger
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, messenger ports.Messenger, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.BookingNotification, numWorkers),
		messenger: messenger,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BookingNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
func (d *Dispatcher) Enqueue(n ports.BookingNotification) {
	i := d.shardIndex(n.ZaloUserID)
	d.workers[i] <- n
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a chat user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(zaloUserID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(zaloUserID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BookingNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.messenger.SendBookingNotification(ctx, n); err != nil {
				metrics.ZaloSendsTotal.WithLabelValues("booking_notification", "error").Inc()
				d.log.Error().Err(err).
					Str("booking_number", n.BookingNumber).
					Str("zalo_user_id", n.ZaloUserID).
					Int("worker_id", id).
					Msg("booking notification failed")
				continue
			}
			metrics.ZaloSendsTotal.WithLabelValues("booking_notification", "ok").Inc()
		}
	}
}
