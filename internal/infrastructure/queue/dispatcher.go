package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

// Delivery outcomes reported to the outcome hook.
const (
	OutcomePublished = "published"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// Dispatcher mirrors ledger events to a sink on a fixed set of workers,
// sharded by identifier so events of one officer stay in order. It
// implements ports.LedgerNotifier and never blocks the scan path.
type Dispatcher struct {
	workers   []chan domain.LedgerEvent
	sink      ports.LedgerSink
	log       zerolog.Logger
	onOutcome func(outcome string)
	wg        sync.WaitGroup
}

type Option func(*Dispatcher)

// WithOutcomeHook registers a callback invoked once per event with one of
// the Outcome* constants. Used for metrics.
func WithOutcomeHook(fn func(outcome string)) Option {
	return func(d *Dispatcher) { d.onOutcome = fn }
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.LedgerSink, log zerolog.Logger, opts ...Option) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.LedgerEvent, numWorkers),
		sink:      sink,
		log:       log,
		onOutcome: func(string) {},
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LedgerEvent, channelBuffer)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

var _ ports.LedgerNotifier = (*Dispatcher)(nil)

// Notify enqueues the event on its shard. A full shard drops the event.
func (d *Dispatcher) Notify(event domain.LedgerEvent) {
	select {
	case d.workers[d.shardIndex(event.Identifier)] <- event:
	default:
		d.onOutcome(OutcomeDropped)
		d.log.Warn().
			Str("event_id", event.EventID).
			Str("identifier", event.Identifier).
			Msg("sync queue full, event dropped")
	}
}

// Pending returns the number of queued events across all shards.
func (d *Dispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// shardIndex maps an identifier deterministically to a worker index.
func (d *Dispatcher) shardIndex(identifier string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LedgerEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			d.publish(ctx, id, event)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, worker int, event domain.LedgerEvent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := d.sink.Publish(ctx, event); err != nil {
		d.onOutcome(OutcomeFailed)
		d.log.Error().Err(err).
			Str("event_id", event.EventID).
			Str("identifier", event.Identifier).
			Int("worker_id", worker).
			Msg("ledger sync failed")
		return
	}
	d.onOutcome(OutcomePublished)
}
