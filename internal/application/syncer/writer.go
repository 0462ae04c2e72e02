// internal/application/syncer/writer.go
package syncer

import (
	"context"
	"errors"
)

var errWriterClosed = errors.New("syncer: writer closed")

// writer runs persistence calls one at a time, in submission order.
//
// Each synchronizer owns one writer, so two mutations issued in quick
// succession can never interleave their backing-store writes out of
// order. This matters for the cart, whose whole-array overwrite is not
// commutative; it is harmless (but still tidy) for the commutative
// favorites union/remove operations.
type writer struct {
	jobs chan writeJob
	stop chan struct{}
}

type writeJob struct {
	ctx context.Context
	fn  func(ctx context.Context) error
	res chan error
}

func newWriter() *writer {
	w := &writer{
		jobs: make(chan writeJob),
		stop: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *writer) loop() {
	for {
		select {
		case j := <-w.jobs:
			j.res <- j.fn(j.ctx)
		case <-w.stop:
			return
		}
	}
}

// Do submits fn and blocks until it has run (or the writer/context is
// done). The caller must not hold the synchronizer lock while waiting.
func (w *writer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	j := writeJob{ctx: ctx, fn: fn, res: make(chan error, 1)}

	select {
	case w.jobs <- j:
	case <-w.stop:
		return errWriterClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.res:
		return err
	case <-w.stop:
		return errWriterClosed
	}
}

// Close stops the loop. Pending Do calls fail with errWriterClosed.
func (w *writer) Close() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
}
