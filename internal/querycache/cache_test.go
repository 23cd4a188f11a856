package querycache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestFetchLoadsAndCaches(t *testing.T) {
	cache := New[[]string](time.Minute)
	calls := 0

	loader := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.Fetch(context.Background(), "k", loader)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("unexpected value %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one load within the staleness window, got %d", calls)
	}
}

func TestFetchExpiresAfterTTL(t *testing.T) {
	cache := New[int](10 * time.Millisecond)
	calls := 0
	loader := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := cache.Fetch(context.Background(), "k", loader); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	got, err := cache.Fetch(context.Background(), "k", loader)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 || calls != 2 {
		t.Fatalf("expected reload after expiry, got value %d after %d calls", got, calls)
	}
}

func TestFetchErrorLeavesCacheUntouched(t *testing.T) {
	cache := New[int](time.Minute)
	cacheErr := errors.New("backend down")

	_, err := cache.Fetch(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 0, cacheErr
	})
	if !errors.Is(err, cacheErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := cache.Get("k"); ok {
		t.Fatal("failed load must not populate the cache")
	}
}

func TestConcurrentFetchesShareOneLoad(t *testing.T) {
	cache := New[int](time.Minute)
	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})

	loader := func(ctx context.Context) (int, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := cache.Fetch(context.Background(), "k", loader)
			if err != nil || got != 42 {
				t.Errorf("fetch: %v %v", got, err)
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected a single shared load, got %d", calls)
	}
}

// A fetch that was superseded must not overwrite the newer result, even
// when its response arrives later.
func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	cache := New[string](time.Minute)

	firstStarted := make(chan struct{})
	firstRelease := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = cache.Fetch(context.Background(), "k", func(ctx context.Context) (string, error) {
			close(firstStarted)
			<-firstRelease
			return "stale", nil
		})
	}()

	<-firstStarted

	// Supersede the in-flight load, then complete a newer one.
	cache.Invalidate("k")
	got, err := cache.Fetch(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || got != "fresh" {
		t.Fatalf("second fetch: %q %v", got, err)
	}

	// Now let the stale response arrive.
	close(firstRelease)
	<-done

	if value, ok := cache.Get("k"); !ok || value != "fresh" {
		t.Fatalf("cache must hold the latest-requested result, got %q (present=%v)", value, ok)
	}
}

func TestPatchAppliesToCachedCollection(t *testing.T) {
	cache := New[[]string](time.Minute)

	if cache.Patch("k", func(v []string) []string { return v }) {
		t.Fatal("patch on a missing entry must be a no-op")
	}

	cache.Set("k", []string{"b", "c"})
	ok := cache.Patch("k", func(v []string) []string {
		return append([]string{"a"}, v...)
	})
	if !ok {
		t.Fatal("patch should apply to a cached entry")
	}

	got, _ := cache.Get("k")
	if len(got) != 3 || got[0] != "a" {
		t.Fatalf("unexpected patched value %v", got)
	}
}

func TestPatchSupersedesInFlightLoad(t *testing.T) {
	cache := New[[]string](time.Minute)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Fetch(context.Background(), "other", func(ctx context.Context) ([]string, error) {
			close(started)
			<-release
			return []string{"from-network"}, nil
		})
	}()
	<-started
	cache.Set("other", []string{"patched"})
	close(release)
	<-done

	if got, _ := cache.Get("other"); len(got) != 1 || got[0] != "patched" {
		t.Fatalf("manual write must win over the older load, got %v", got)
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	cache := New[int](time.Minute)
	ch, cancel := cache.Subscribe("k")
	defer cancel()

	cache.Set("k", 1)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a notification after Set")
	}

	cache.Patch("k", func(v int) int { return v + 1 })
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a notification after Patch")
	}

	cancel()
	cache.Set("k", 3)
	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBustDropsEverything(t *testing.T) {
	cache := New[int](time.Minute)
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Bust()
	if _, ok := cache.Get("a"); ok {
		t.Fatal("bust must drop all entries")
	}
	if _, ok := cache.Get("b"); ok {
		t.Fatal("bust must drop all entries")
	}
}
