package checker_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
)

func freshTimestamp() *string {
	ts := time.Now().Format(time.RFC3339)
	return &ts
}

func oldTimestamp() *string {
	ts := time.Now().Add(-time.Hour).Format(time.RFC3339)
	return &ts
}

func priceOf(v float64) *float64 { return &v }

func TestRefreshSkipsFreshEntries(t *testing.T) {
	h := newHarness(t)
	_ = h.subs.Upsert(subscriptions.Subscription{ID: "111", Target: 50})
	_ = h.state.Merge("111", pricestate.Patch{LastPrice: priceOf(42), LastCheckTime: freshTimestamp()})

	entries := h.checker.RefreshStale(context.Background(), 10*time.Minute)

	if h.source.calls.Load() != 0 {
		t.Fatalf("fresh cache must not hit the source, got %d calls", h.source.calls.Load())
	}
	if len(entries) != 1 || entries[0].Price == nil || *entries[0].Price != 42 {
		t.Fatalf("expected cached price 42, got %+v", entries)
	}
}

func TestRefreshUpdatesStaleEntries(t *testing.T) {
	h := newHarness(t)
	_ = h.subs.Upsert(subscriptions.Subscription{ID: "111", Target: 50})
	_ = h.state.Merge("111", pricestate.Patch{LastPrice: priceOf(42), LastCheckTime: oldTimestamp()})
	h.source.prices["111"] = 39

	entries := h.checker.RefreshStale(context.Background(), 10*time.Minute)

	if h.source.calls.Load() != 1 {
		t.Fatalf("stale entry must be refetched, got %d calls", h.source.calls.Load())
	}
	if entries[0].Price == nil || *entries[0].Price != 39 || entries[0].Stale {
		t.Fatalf("expected refreshed price 39, got %+v", entries[0])
	}

	// кэш обновился — повторный просмотр в пределах ttl уже без запроса
	_ = h.checker.RefreshStale(context.Background(), 10*time.Minute)
	if h.source.calls.Load() != 1 {
		t.Fatalf("refreshed entry must be served from cache, got %d calls", h.source.calls.Load())
	}
}

func TestRefreshFailureKeepsCachedPriceAsStale(t *testing.T) {
	h := newHarness(t)
	_ = h.subs.Upsert(subscriptions.Subscription{ID: "111", Target: 50})
	_ = h.state.Merge("111", pricestate.Patch{LastPrice: priceOf(42), LastCheckTime: oldTimestamp()})
	h.source.fail["111"] = true

	entries := h.checker.RefreshStale(context.Background(), 10*time.Minute)

	e := entries[0]
	if e.Price == nil || *e.Price != 42 {
		t.Fatalf("cached price must survive a failed refresh, got %+v", e)
	}
	if !e.Stale {
		t.Fatal("failed refresh must be annotated as stale")
	}
}

func TestRefreshNeverObservedUnavailable(t *testing.T) {
	h := newHarness(t)
	_ = h.subs.Upsert(subscriptions.Subscription{ID: "111", Target: 50})
	h.source.fail["111"] = true

	entries := h.checker.RefreshStale(context.Background(), 10*time.Minute)

	e := entries[0]
	if e.Price != nil {
		t.Fatalf("never-observed product must be unavailable, got %+v", e)
	}
	if e.Stale {
		t.Fatal("unavailable marker must not be flagged as stale cache")
	}
}

func TestRefreshDoesNotTouchAlerts(t *testing.T) {
	h := newHarness(t)
	_ = h.subs.Upsert(subscriptions.Subscription{ID: "111", Target: 50})
	h.source.prices["111"] = 40 // ниже цели

	_ = h.checker.RefreshStale(context.Background(), 10*time.Minute)

	if h.notifier.attempts != 0 {
		t.Fatal("on-demand refresh must not send alerts")
	}
	if h.state.Get("111").InAlert {
		t.Fatal("on-demand refresh must not set in_alert")
	}
}
