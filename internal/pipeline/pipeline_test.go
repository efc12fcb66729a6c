package pipeline

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/database"
	"github.com/Jhoney47/GameCodeBase/internal/publisher"
	"github.com/Jhoney47/GameCodeBase/internal/snapshot"
	"github.com/Jhoney47/GameCodeBase/internal/testutil"
)

type fakePublisher struct {
	mu        sync.Mutex
	snapshots []*snapshot.Snapshot
	errs      []error
	published chan struct{}
}

func newFakePublisher(errs ...error) *fakePublisher {
	return &fakePublisher{errs: errs, published: make(chan struct{}, 16)}
}

func (f *fakePublisher) Publish(ctx context.Context, s *snapshot.Snapshot) (*publisher.Result, error) {
	f.mu.Lock()
	defer func() {
		f.mu.Unlock()
		f.published <- struct{}{}
	}()

	f.snapshots = append(f.snapshots, s)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &publisher.Result{Digest: "d", TotalCodes: s.TotalCodes}, nil
}

func (f *fakePublisher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}

func waitPublished(t *testing.T, f *fakePublisher) {
	t.Helper()
	select {
	case <-f.published:
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for publish")
	}
}

func newTestOrchestrator(t *testing.T, pub publisher.Publisher) (*Orchestrator, *database.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	builder := snapshot.NewBuilder([]string{"铃兰之剑"}, false)
	return NewOrchestrator(db.Conn, builder, pub, NewMemoryQueue(), 0, zaptest.NewLogger(t)), db
}

func TestMemoryQueueCoalesces(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	for _, reason := range []string{"approve", "publish", "delete"} {
		if err := q.Push(ctx, NewEvent(reason)); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}

	e, err := q.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if e.Reason != "approve" || e.ID == "" {
		t.Errorf("Expected the first event, got %+v", e)
	}
	if n, _ := q.Drain(ctx); n != 0 {
		t.Errorf("Expected later events to be coalesced away, drained %d", n)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := q.Pop(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected Pop to honour cancellation, got %v", err)
	}
}

func TestRunOnceBuildsFromStore(t *testing.T) {
	pub := newFakePublisher()
	o, db := newTestOrchestrator(t, pub)
	testutil.CreateTestCode(t, db, "铃兰之剑", "LIVE", testutil.Eligible())
	testutil.CreateTestCode(t, db, "新游戏", "WAIT")

	res, err := o.RunOnce(context.Background(), "test")
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if res.TotalCodes != 1 {
		t.Errorf("Expected one exported code, got %d", res.TotalCodes)
	}

	s := pub.snapshots[0]
	if len(s.Games) != 1 || s.Games[0].GameName != "铃兰之剑" || s.Games[0].Codes[0].Code != "LIVE" {
		t.Errorf("Unexpected snapshot %+v", s.Games)
	}
}

func TestRunOnceStopsOnStoreFailure(t *testing.T) {
	pub := newFakePublisher()
	o, db := newTestOrchestrator(t, pub)
	db.Close()

	_, err := o.RunOnce(context.Background(), "test")
	if !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("Expected ErrPersistence, got %v", err)
	}
	if pub.calls() != 0 {
		t.Error("Nothing may be published when the store is unavailable")
	}
}

func TestRunCoalescesBurstAndSurvivesPublishErrors(t *testing.T) {
	pub := newFakePublisher(apperr.Publish("disk full", errors.New("ENOSPC")))
	o, _ := newTestOrchestrator(t, pub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	for i := 0; i < 5; i++ {
		o.Notify(ctx, "burst")
	}
	go func() { done <- o.Run(ctx) }()

	waitPublished(t, pub)
	time.Sleep(100 * time.Millisecond)
	if n := pub.calls(); n != 1 {
		t.Fatalf("Expected a burst to produce one run, got %d", n)
	}

	// The failed run must not stop the worker.
	o.Notify(ctx, "retry")
	waitPublished(t, pub)
	if n := pub.calls(); n != 2 {
		t.Errorf("Expected a second run, got %d", n)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRedisQueue(t *testing.T) {
	url := os.Getenv("GAMECODEBASE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("GAMECODEBASE_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	q, err := ConnectRedisQueue(ctx, url, "gamecodebase:test:"+NewEvent("").ID)
	if err != nil {
		t.Fatalf("ConnectRedisQueue: %v", err)
	}
	defer q.Close()

	first := NewEvent("approve")
	for _, e := range []Event{first, NewEvent("publish"), NewEvent("delete")} {
		if err := q.Push(ctx, e); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}

	got, err := q.Pop(ctx)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if got.ID != first.ID || got.Reason != "approve" {
		t.Errorf("Expected FIFO order, got %+v", got)
	}
	if n, err := q.Drain(ctx); err != nil || n != 2 {
		t.Errorf("Expected to drain 2 events, got %d (%v)", n, err)
	}
	if n, _ := q.Drain(ctx); n != 0 {
		t.Errorf("Expected empty queue, got %d", n)
	}
}

var _ Notifier = (*Orchestrator)(nil)
