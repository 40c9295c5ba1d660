package llm

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGuard_OpensAfterConsecutiveFailures(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: down},
		MockResponse{Err: down},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	p := WithGuard(mock, GuardConfig{MaxInFlight: 1, FailureThreshold: 2, OpenTimeout: time.Hour})

	for range 2 {
		if _, err := p.Generate(context.Background(), Request{}); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err := p.Generate(context.Background(), Request{})
	if !IsKind(err, KindUnavailable) {
		t.Fatalf("expected unavailable from open breaker, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("open breaker must not reach the provider, got %d calls", mock.CallCount())
	}
}

func TestGuard_SingleInFlight(t *testing.T) {
	var inFlight, peak atomic.Int32
	slow := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return &Response{Content: json.RawMessage(`{}`)}, nil
	})

	p := WithGuard(slow, GuardConfig{MaxInFlight: 1, MaxQueue: 8})

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Generate(context.Background(), Request{}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if peak.Load() != 1 {
		t.Fatalf("expected at most 1 call in flight, saw %d", peak.Load())
	}
}

func TestGuard_ModelIDDelegates(t *testing.T) {
	if got := WithGuard(NewMockProvider(), GuardConfig{}).ModelID(); got != "mock" {
		t.Fatalf("expected 'mock', got %q", got)
	}
}
