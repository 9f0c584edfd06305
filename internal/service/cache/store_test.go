package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrComputeCachesWithinWindow(t *testing.T) {
	s := NewStore[int]()
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, cached, err := s.GetOrCompute(context.Background(), "AKBNK.IS", time.Hour, compute)
	if err != nil || v != 42 || cached {
		t.Fatalf("first call: v=%d cached=%v err=%v", v, cached, err)
	}

	v, cached, err = s.GetOrCompute(context.Background(), "AKBNK.IS", time.Hour, compute)
	if err != nil || v != 42 {
		t.Fatalf("second call: v=%d err=%v", v, err)
	}
	if !cached {
		t.Fatal("second call within window must be served from cache")
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeRecomputesAfterWindow(t *testing.T) {
	s := NewStore[int]()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, _, err := s.GetOrCompute(context.Background(), "k", 12*time.Hour, compute); err != nil {
		t.Fatal(err)
	}

	now = now.Add(12 * time.Hour) // window elapsed exactly
	v, cached, err := s.GetOrCompute(context.Background(), "k", 12*time.Hour, compute)
	if err != nil {
		t.Fatal(err)
	}
	if cached || v != 2 || calls != 2 {
		t.Fatalf("expected one recompute: v=%d cached=%v calls=%d", v, cached, calls)
	}

	e, ok := s.Peek("k")
	if !ok || !e.ComputedAt.Equal(now) {
		t.Fatalf("computed_at not updated: %v", e.ComputedAt)
	}
}

func TestFailedComputeKeepsPreviousEntry(t *testing.T) {
	s := NewStore[int]()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if _, _, err := s.GetOrCompute(context.Background(), "k", time.Hour, func(context.Context) (int, error) {
		return 7, nil
	}); err != nil {
		t.Fatal(err)
	}
	before, _ := s.Peek("k")

	now = now.Add(2 * time.Hour)
	boom := errors.New("provider down")
	_, _, err := s.GetOrCompute(context.Background(), "k", time.Hour, func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected compute failure to propagate, got %v", err)
	}

	after, ok := s.Peek("k")
	if !ok {
		t.Fatal("entry vanished after failed compute")
	}
	if after.Value != before.Value || !after.ComputedAt.Equal(before.ComputedAt) {
		t.Fatalf("failed compute mutated the entry: %+v -> %+v", before, after)
	}
}

func TestFailedComputeLeavesNoEntry(t *testing.T) {
	s := NewStore[int]()
	_, _, err := s.GetOrCompute(context.Background(), "k", time.Hour, func(context.Context) (int, error) {
		return 0, errors.New("nope")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := s.Peek("k"); ok {
		t.Fatal("no entry may exist before first successful computation")
	}
}

func TestConcurrentSameKeyComputesOnce(t *testing.T) {
	s := NewStore[int]()
	var calls int32
	release := make(chan struct{})

	compute := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 1, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.GetOrCompute(context.Background(), "k", time.Hour, compute); err != nil {
				t.Error(err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("compute ran %d times for one key, want 1", got)
	}
}

func TestDifferentKeysComputeIndependently(t *testing.T) {
	s := NewStore[string]()
	var wg sync.WaitGroup
	keys := []string{"A", "B", "C"}
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			v, _, err := s.GetOrCompute(context.Background(), k, time.Hour, func(context.Context) (string, error) {
				return "v-" + k, nil
			})
			if err != nil || v != "v-"+k {
				t.Errorf("key %s: v=%q err=%v", k, v, err)
			}
		}(k)
	}
	wg.Wait()
	if s.Len() != len(keys) {
		t.Fatalf("expected %d entries, got %d", len(keys), s.Len())
	}
}

func TestComputeSurvivesCallerCancellation(t *testing.T) {
	s := NewStore[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, _, err := s.GetOrCompute(ctx, "k", time.Hour, func(ctx context.Context) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 9, nil
	})
	if err != nil || v != 9 {
		t.Fatalf("compute must run detached from caller cancellation: v=%d err=%v", v, err)
	}
	if _, ok := s.Peek("k"); !ok {
		t.Fatal("cache not populated for the next reader")
	}
}

func TestPutBypassesFreshness(t *testing.T) {
	s := NewStore[int]()
	s.Put("k", 1)
	s.Put("k", 2)
	e, ok := s.Peek("k")
	if !ok || e.Value != 2 {
		t.Fatalf("expected unconditional overwrite, got %+v ok=%v", e, ok)
	}
}
