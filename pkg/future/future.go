// Package future provides a typed, single-assignment result of an
// asynchronous operation.
package future

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/kazz187/taskmarket/pkg/panicerr"
)

// Future is the pending result of an operation started by Run. It resolves
// exactly once.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already complete.
func Resolved[T any](val T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(val, err)
	return f
}

func (f *Future[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the operation completes or ctx is done. A cancelled ctx
// only stops the wait; the operation itself keeps running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Runner runs operations in the background one at a time, in the order they
// were started, and keeps track of them so that Wait can block until every
// started operation has resolved.
type Runner struct {
	wg   conc.WaitGroup
	mu   sync.Mutex
	tail chan struct{} // closed when the last started operation finishes
}

// Run queues fn on r and returns its future. fn starts once every operation
// queued before it has finished. A panic inside fn resolves the future with
// an error instead of crashing the process.
func Run[T any](r *Runner, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	safe := panicerr.SafeValue(fn)

	r.mu.Lock()
	prev := r.tail
	done := make(chan struct{})
	r.tail = done
	r.mu.Unlock()

	r.wg.Go(func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		f.resolve(safe())
	})
	return f
}

// Wait blocks until all operations started on r have resolved.
func (r *Runner) Wait() {
	r.wg.Wait()
}
