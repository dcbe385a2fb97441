package ratelimit_test

import (
	"sync"
	"testing"
	"time"

	"cottage/shared/ratelimit"
)

func TestSlidingWindow_AdmitsUpToMax(t *testing.T) {
	limiter := ratelimit.NewSlidingWindow(3, time.Minute)

	for i := range 3 {
		if !limiter.Allow("10.0.0.1") {
			t.Errorf("expected hit %d to be admitted", i+1)
		}
	}

	if limiter.Allow("10.0.0.1") {
		t.Error("expected hit above the quota to be denied")
	}
}

func TestSlidingWindow_KeysAreIndependent(t *testing.T) {
	limiter := ratelimit.NewSlidingWindow(1, time.Minute)

	if !limiter.Allow("10.0.0.1") {
		t.Error("expected first key to be admitted")
	}

	if !limiter.Allow("10.0.0.2") {
		t.Error("expected second key to be admitted despite first being full")
	}
}

func TestSlidingWindow_DenialDoesNotExtendBlock(t *testing.T) {
	limiter := ratelimit.NewSlidingWindow(2, 100*time.Millisecond)

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")

	// Hammering while throttled must not push the window forward.
	for range 5 {
		if limiter.Allow("10.0.0.1") {
			t.Fatal("expected throttled hit to be denied")
		}
	}

	time.Sleep(150 * time.Millisecond)

	if !limiter.Allow("10.0.0.1") {
		t.Error("expected quota to recover once the window passed")
	}
}

func TestSlidingWindow_WindowSlides(t *testing.T) {
	limiter := ratelimit.NewSlidingWindow(2, 100*time.Millisecond)

	limiter.Allow("10.0.0.1")

	time.Sleep(60 * time.Millisecond)

	limiter.Allow("10.0.0.1")

	if limiter.Allow("10.0.0.1") {
		t.Error("expected third hit inside the window to be denied")
	}

	// The first hit ages out, the second is still live.
	time.Sleep(60 * time.Millisecond)

	if !limiter.Allow("10.0.0.1") {
		t.Error("expected a slot once the oldest hit aged out")
	}

	if limiter.Allow("10.0.0.1") {
		t.Error("expected the window to still hold two live hits")
	}
}

func TestSlidingWindow_Remaining(t *testing.T) {
	limiter := ratelimit.NewSlidingWindow(3, time.Minute)

	if got := limiter.Remaining("10.0.0.1"); got != 3 {
		t.Errorf("expected 3 remaining for a fresh key, got %d", got)
	}

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")

	if got := limiter.Remaining("10.0.0.1"); got != 1 {
		t.Errorf("expected 1 remaining after two hits, got %d", got)
	}

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.1")

	if got := limiter.Remaining("10.0.0.1"); got != 0 {
		t.Errorf("expected 0 remaining at quota, got %d", got)
	}
}

func TestSlidingWindow_ConcurrentCallersShareQuota(t *testing.T) {
	const (
		max     = 10
		callers = 50
	)

	limiter := ratelimit.NewSlidingWindow(max, time.Minute)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
	)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if limiter.Allow("10.0.0.1") {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	if admitted != max {
		t.Errorf("expected exactly %d admitted across concurrent callers, got %d", max, admitted)
	}
}
