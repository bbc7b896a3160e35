package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
)

type recordingSink struct {
	mu   sync.Mutex
	seen map[string][]string
}

func (s *recordingSink) consume(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string][]string)
	}
	s.seen[n.Resource] = append(s.seen[n.Resource], n.ID)
	return nil
}

func TestDispatcher_PreservesPerResourceOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(3, sink.consume, zerolog.Nop())
	d.Start(context.Background())

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		for _, res := range []string{"users", "products"} {
			if !d.Enqueue(domain.Notification{ID: id, Resource: res}) {
				t.Fatalf("enqueue %s/%s rejected", res, id)
			}
		}
	}
	d.Close()

	for _, res := range []string{"users", "products"} {
		got := sink.seen[res]
		if len(got) != len(ids) {
			t.Fatalf("%s: got %d notifications, want %d", res, len(got), len(ids))
		}
		for i := range ids {
			if got[i] != ids[i] {
				t.Fatalf("%s: order %v, want %v", res, got, ids)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, func(context.Context, domain.Notification) error { return nil }, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
	first := d.shardIndex("products")
	for i := 0; i < 10; i++ {
		if d.shardIndex("products") != first {
			t.Fatal("shard index changed between calls")
		}
	}
}

func TestDispatcher_EnqueueAfterCloseIsRejected(t *testing.T) {
	d := NewDispatcher(1, func(context.Context, domain.Notification) error { return nil }, zerolog.Nop())
	d.Start(context.Background())
	d.Close()

	if d.Enqueue(domain.Notification{ID: "late", Resource: "users"}) {
		t.Fatal("expected enqueue after close to be rejected")
	}
	d.Close()
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	d := NewDispatcher(1, func(context.Context, domain.Notification) error { return errors.New("unused") }, zerolog.Nop())
	// Not started: nothing drains the queue.
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(domain.Notification{Resource: "users"}) {
			t.Fatalf("enqueue %d rejected before buffer was full", i)
		}
	}
	if d.Enqueue(domain.Notification{Resource: "users"}) {
		t.Fatal("expected enqueue on a full queue to be rejected")
	}
}
