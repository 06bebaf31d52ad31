package questionbank

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCacheMemoizes(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(_ context.Context, name string) ([]Question, error) {
		calls.Add(1)
		return []Question{{ID: 1, Question: name}}, nil
	})
	c := NewCache(src)

	for i := 0; i < 3; i++ {
		qs, err := c.Load(context.Background(), "Ownership")
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if len(qs) != 1 {
			t.Fatalf("load %d: got %d questions", i, len(qs))
		}
	}
	if calls.Load() != 1 {
		t.Errorf("source calls = %d, want 1", calls.Load())
	}
	if _, ok := c.Cached("Ownership"); !ok {
		t.Error("expected Ownership to be cached")
	}
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(_ context.Context, name string) ([]Question, error) {
		if calls.Add(1) == 1 {
			return nil, &LoadError{Name: name, Err: errors.New("flaky")}
		}
		return []Question{}, nil
	})
	c := NewCache(src)

	if _, err := c.Load(context.Background(), "Lineage"); err == nil {
		t.Fatal("expected first load to fail")
	}
	if _, err := c.Load(context.Background(), "Lineage"); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("source calls = %d, want 2", calls.Load())
	}
}

func TestCacheCollapsesConcurrentLoads(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	src := SourceFunc(func(_ context.Context, _ string) ([]Question, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return []Question{{ID: 1}}, nil
	})
	c := NewCache(src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Load(context.Background(), "Security"); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}
	<-started
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("source calls = %d, want 1", calls.Load())
	}
}

func TestCacheLoadOutlivesCancelledCaller(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var sawCancel atomic.Bool
	src := SourceFunc(func(ctx context.Context, _ string) ([]Question, error) {
		close(started)
		<-release
		sawCancel.Store(ctx.Err() != nil)
		return []Question{{ID: 1}}, nil
	})
	c := NewCache(src)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.Load(ctx, "Security")
		first <- err
	}()
	<-started

	second := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background(), "Security")
		second <- err
	}()

	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller: err = %v, want context.Canceled", err)
	}
	close(release)
	if err := <-second; err != nil {
		t.Fatalf("live caller: %v", err)
	}
	if sawCancel.Load() {
		t.Error("source saw the first caller's cancellation")
	}
	if _, ok := c.Cached("Security"); !ok {
		t.Error("expected Security to be cached")
	}
}
