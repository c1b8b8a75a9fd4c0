// Package queue delivers contact-form messages to the mailer asynchronously
// so the HTTP handler can acknowledge immediately.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/api/metrics"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes contact messages to a fixed set of workers using
// consistent hashing on the sender address, keeping per-sender ordering.
type Dispatcher struct {
	workers []chan ports.ContactMessage
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ContactMessage, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ContactMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its sender.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(msg ports.ContactMessage) {
	d.workers[d.shardIndex(msg.Email)] <- msg
}

// shardIndex maps a sender address deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ContactMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.SendContact(ctx, msg); err != nil {
				metrics.ContactDeliveriesTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("sender", msg.Email).
					Int("worker_id", id).
					Msg("contact delivery failed")
				continue
			}
			metrics.ContactDeliveriesTotal.WithLabelValues("ok").Inc()
		}
	}
}
