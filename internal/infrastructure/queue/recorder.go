package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// SecurityRecorder persists access-decision events off the request path. It
// routes events to a fixed set of workers using consistent hashing on the
// originating address, so events from one source stay ordered. Recording is
// best-effort: a full channel drops the event with a log line rather than
// blocking a request.
type SecurityRecorder struct {
	workers []chan domain.SecurityEvent
	repo    ports.SecurityEventRepository
	log     zerolog.Logger
}

// NewSecurityRecorder creates a SecurityRecorder with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewSecurityRecorder(numWorkers int, repo ports.SecurityEventRepository, log zerolog.Logger) *SecurityRecorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &SecurityRecorder{
		workers: make([]chan domain.SecurityEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.SecurityEvent, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *SecurityRecorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Notify enqueues one event for persistence. Never blocks.
func (r *SecurityRecorder) Notify(event domain.SecurityEvent) {
	ch := r.workers[r.shardIndex(event.IPAddress)]
	select {
	case ch <- event:
	default:
		r.log.Warn().
			Str("kind", string(event.Kind)).
			Str("ip", event.IPAddress).
			Msg("security event queue full, event dropped")
	}
}

// shardIndex maps an address deterministically to a worker index.
func (r *SecurityRecorder) shardIndex(ip string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ip))
	return int(h.Sum32()) % len(r.workers)
}

func (r *SecurityRecorder) runWorker(ctx context.Context, id int, ch <-chan domain.SecurityEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := r.repo.Insert(ctx, &event); err != nil {
				r.log.Error().Err(err).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("security event persist failed")
			}
		}
	}
}
