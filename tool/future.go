package tool

import (
	"context"
	"fmt"
)

// Future is a pending tool result. Tools that complete asynchronously return
// a Future instead of a value; the resolver awaits it so callers only ever
// see completed values.
type Future interface {
	Await(ctx context.Context) (any, error)
}

type future struct {
	done  chan struct{}
	value any
	err   error
}

// Go runs fn on its own goroutine and returns a Future for its outcome. A
// panic inside fn is reported as the Future's error.
func Go(ctx context.Context, fn func(ctx context.Context) (any, error)) Future {
	f := &future{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("async tool panic: %v", r)
			}
		}()

		f.value, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the computation completes or ctx is done.
func (f *future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// resolved is a Future that is already complete.
type resolved struct {
	value any
	err   error
}

// Resolved returns a completed Future.
func Resolved(v any, err error) Future { return resolved{value: v, err: err} }

func (r resolved) Await(context.Context) (any, error) { return r.value, r.err }

// Await normalizes v: while v is a Future it is awaited; any other value is
// returned unchanged.
func Await(ctx context.Context, v any) (any, error) {
	for {
		f, ok := v.(Future)
		if !ok || f == nil {
			return v, nil
		}

		next, err := f.Await(ctx)
		if err != nil {
			return nil, err
		}

		v = next
	}
}
