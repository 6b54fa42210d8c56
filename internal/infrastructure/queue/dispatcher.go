package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/storefront/identity-system/internal/api/metrics"
	"github.com/storefront/identity-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes verification mail to a fixed set of workers using
// consistent hashing on the recipient address, so re-sends for one address
// stay ordered. A delivery failure is logged and counted, never propagated:
// mail must not fail the request that triggered it.
type Dispatcher struct {
	workers []chan ports.VerificationMail
	sender  ports.MailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.MailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.VerificationMail, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.VerificationMail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail job to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(mail ports.VerificationMail) {
	d.workers[d.shardIndex(mail.Email)] <- mail
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.VerificationMail) {
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.SendVerification(ctx, mail.Email, mail.ConfirmationLink); err != nil {
				metrics.VerificationMailsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("email", mail.Email).
					Int("worker_id", id).
					Msg("verification mail delivery failed")
				continue
			}
			metrics.VerificationMailsTotal.WithLabelValues("sent").Inc()
		}
	}
}
