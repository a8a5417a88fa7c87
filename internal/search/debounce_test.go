package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalesces(t *testing.T) {
	var mu sync.Mutex
	var ran []string

	d := NewDebouncer(context.Background(), 30*time.Millisecond, func(ctx context.Context, q string) {
		mu.Lock()
		ran = append(ran, q)
		mu.Unlock()
	})
	defer d.Stop()

	// rapid typing: only the last input should execute
	d.Submit("m")
	d.Submit("mi")
	d.Submit("min")
	d.Submit("minimalism")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ran) == 1 && ran[0] == "minimalism"
	}, time.Second, 10*time.Millisecond)

	// quiet period elapsed; a fresh submission runs again
	d.Submit("travel")
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(ran) == 2 && ran[1] == "travel"
	}, time.Second, 10*time.Millisecond)
}

func TestDebouncerSupersedesInFlight(t *testing.T) {
	started := make(chan string, 2)
	finished := make(chan string, 2)

	d := NewDebouncer(context.Background(), 5*time.Millisecond, func(ctx context.Context, q string) {
		started <- q
		select {
		case <-ctx.Done():
			// superseded: result must be discarded
		case <-time.After(200 * time.Millisecond):
			finished <- q
		}
	})
	defer d.Stop()

	d.Submit("stale")
	select {
	case q := <-started:
		require.Equal(t, "stale", q)
	case <-time.After(time.Second):
		t.Fatal("first run never started")
	}

	// a newer query cancels the in-flight one
	d.Submit("fresh")
	select {
	case q := <-finished:
		require.Equal(t, "fresh", q, "only the newest run may complete")
	case <-time.After(2 * time.Second):
		t.Fatal("second run never finished")
	}
}

func TestDebouncerStop(t *testing.T) {
	ran := make(chan struct{}, 1)
	d := NewDebouncer(context.Background(), 10*time.Millisecond, func(ctx context.Context, q string) {
		ran <- struct{}{}
	})

	d.Submit("never")
	d.Stop()
	select {
	case <-ran:
		t.Fatal("run fired after Stop")
	case <-time.After(50 * time.Millisecond):
	}

	// submissions after Stop are ignored
	d.Submit("still-never")
	select {
	case <-ran:
		t.Fatal("run fired after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}
