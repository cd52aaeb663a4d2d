package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/foodmarket/platform-api/internal/core/ports"
	"github.com/foodmarket/platform-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
)

// Dispatcher routes auth events to a fixed set of workers using consistent
// hashing on the email, so events for one account are processed in order.
// Enqueue never blocks: when a worker channel is full the event is dropped.
type Dispatcher struct {
	workers []chan ports.AuthEventInput
	service ports.AuditService
	log     zerolog.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// buffering up to buffer events. Non-positive values use the defaults.
func NewDispatcher(numWorkers, buffer int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuthEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuthEventInput, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit when ctx is cancelled or
// after draining their channel once Close is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its email. It reports
// false when the event was dropped.
func (d *Dispatcher) Enqueue(event ports.AuthEventInput) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(event, "dispatcher closed")
		return false
	}

	idx := d.shardIndex(event.Email)
	ch := d.workers[idx]
	select {
	case ch <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(ch)))
		return true
	default:
		d.drop(event, "worker queue full")
		return false
	}
}

// Close stops accepting events and waits for the workers to drain. It is safe
// to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
		d.mu.Unlock()
	})
	d.wg.Wait()
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(email)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) drop(event ports.AuthEventInput, reason string) {
	metrics.AuditEventsDroppedTotal.Inc()
	d.log.Warn().
		Str("type", string(event.Type)).
		Str("reason", reason).
		Msg("audit event dropped")
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuthEventInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("type", string(event.Type)).
					Int("worker_id", id).
					Msg("audit event processing failed")
			}
		}
	}
}
