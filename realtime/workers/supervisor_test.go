package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// crashingWorker panics a fixed number of times before finishing
// cleanly, to exercise the restart loop.
type crashingWorker struct {
	crashes int32
	runs    atomic.Int32
}

func (w *crashingWorker) Run(ctx context.Context) error {
	if w.runs.Add(1) <= w.crashes {
		panic("worker blew up")
	}
	return nil
}

// blockingWorker runs until its context is canceled.
type blockingWorker struct {
	started chan struct{}
}

func (w *blockingWorker) Run(ctx context.Context) error {
	close(w.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestSupervisor_Restarts_Panicking_Worker(t *testing.T) {
	req := require.New(t)
	worker := &crashingWorker{crashes: 2}
	sup := NewSupervisor(slog.Default())
	sup.Add(worker)

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	// Two panics, then a clean finish on the third run
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not finish")
	}
	req.Equal(int32(3), worker.runs.Load())
}

func TestSupervisor_Stop_Cancels_Workers(t *testing.T) {
	worker := &blockingWorker{started: make(chan struct{})}
	sup := NewSupervisor(slog.Default())
	sup.Add(worker)

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	select {
	case <-worker.started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never started")
	}

	sup.Stop()

	// A canceled worker is never restarted
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}
}

func TestSupervisor_Runs_Multiple_Workers(t *testing.T) {
	req := require.New(t)
	first := &crashingWorker{}
	second := &crashingWorker{}
	sup := NewSupervisor(slog.Default())
	sup.Add(first, second)

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not finish")
	}
	req.Equal(int32(1), first.runs.Load())
	req.Equal(int32(1), second.runs.Load())
}
