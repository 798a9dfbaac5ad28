package checker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Spok95/wb-price-bot/internal/checker"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
)

func TestSchedulerRunsImmediatePass(t *testing.T) {
	h := newHarness(t)
	_ = h.subs.Upsert(subscriptions.Subscription{ID: "111", Target: 50})
	h.source.prices["111"] = 60

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := checker.NewScheduler(h.checker, time.Hour, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// первый проход не ждёт тика
	deadline := time.After(2 * time.Second)
	for h.source.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("immediate pass did not happen")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}
