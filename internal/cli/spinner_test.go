package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("working...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if s.Cancelled() != true {
		// Stop cancels the internal context unconditionally.
		t.Error("spinner context should be cancelled after Stop")
	}
}

func TestSpinnerStopReturns(t *testing.T) {
	s := newSpinner("idle")

	done := make(chan struct{})
	go func() {
		// Stop blocks until the animation goroutine exits.
		s.Start()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "cancellable")
	s.Start()

	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("spinner should report cancellation")
	}
}
