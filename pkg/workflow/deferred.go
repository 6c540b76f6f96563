// Package workflow drives report generation from a submitted request to a
// saved document.
package workflow

import (
	"context"
	"time"
)

// Deferred is a unit of work that starts after a delay and can be cancelled
// until it finishes. The function receives the task's context and must check
// it before any side effect.
type Deferred[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	value  T
	err    error
}

// Defer schedules fn to run after delay. Cancelling ctx or calling Cancel
// before the delay elapses prevents fn from running; Wait then reports the
// context error.
func Defer[T any](ctx context.Context, delay time.Duration, fn func(ctx context.Context) (T, error)) *Deferred[T] {
	ctx, cancel := context.WithCancel(ctx)
	d := &Deferred[T]{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(d.done)
		defer cancel()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			d.err = ctx.Err()
		case <-timer.C:
			d.value, d.err = fn(ctx)
		}
	}()
	return d
}

// Done is closed when the task has finished or was cancelled.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Cancel cancels the task's context.
func (d *Deferred[T]) Cancel() {
	d.cancel()
}

// Wait blocks until the task finishes and returns its result.
func (d *Deferred[T]) Wait() (T, error) {
	<-d.done
	return d.value, d.err
}
