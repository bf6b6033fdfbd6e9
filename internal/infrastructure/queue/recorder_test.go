package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
)

type captureEventRepo struct {
	mu     sync.Mutex
	events []*domain.SecurityEvent
}

func (r *captureEventRepo) Insert(_ context.Context, event *domain.SecurityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *captureEventRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestSecurityRecorder_PersistsEvents(t *testing.T) {
	repo := &captureEventRepo{}
	recorder := NewSecurityRecorder(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	recorder.Start(ctx)

	for i := 0; i < 10; i++ {
		recorder.Notify(domain.SecurityEvent{
			Kind:      domain.SecurityLogin,
			IPAddress: "10.0.0.1",
			CreatedAt: time.Now().UTC(),
		})
	}

	waitFor(t, func() bool { return repo.count() == 10 })
}

func TestSecurityRecorder_ShardingIsStable(t *testing.T) {
	recorder := NewSecurityRecorder(4, &captureEventRepo{}, zerolog.Nop())

	first := recorder.shardIndex("10.0.0.1")
	for i := 0; i < 100; i++ {
		if recorder.shardIndex("10.0.0.1") != first {
			t.Fatalf("shard index for one address must be stable")
		}
	}
}

// Notify never blocks the caller, even with no worker draining the queue.
func TestSecurityRecorder_NotifyNeverBlocks(t *testing.T) {
	recorder := NewSecurityRecorder(1, &captureEventRepo{}, zerolog.Nop())
	// No Start: the channel fills and further events must be dropped.

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			recorder.Notify(domain.SecurityEvent{Kind: domain.SecurityTokenCheck, IPAddress: "10.0.0.2"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Notify blocked")
	}
}
