package load

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultReadyTimeout bounds how long Wait blocks for producers that
// fail silently.
const DefaultReadyTimeout = 30 * time.Second

// A Loader coordinates asynchronous, order-independent model producers
// (application modules, plugins) during startup. Producers run through Go;
// Wait is the readiness signal: it returns the frozen registry only after
// every producer finished registering, or fails after a bounded timeout.
//
//	l := load.NewLoader(ctx)
//	for _, p := range plugins {
//		l.Go(p.RegisterModels)
//	}
//	reg, err := l.Wait()
type Loader struct {
	builder *Builder
	group   *errgroup.Group
	// ctx is the caller's context. Wait observes its cancellation
	// directly; producer errors travel through the group, never through
	// a derived context, so a successful run is never misreported as
	// canceled.
	ctx     context.Context
	timeout time.Duration
}

// A LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithReadyTimeout bounds the readiness wait. A non-positive duration
// keeps the default.
func WithReadyTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLoader returns a loader owning a fresh registry builder.
func NewLoader(ctx context.Context, opts ...LoaderOption) *Loader {
	l := &Loader{
		builder: NewBuilder(),
		group:   new(errgroup.Group),
		ctx:     ctx,
		timeout: DefaultReadyTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Go runs one producer. The producer registers its models on the shared
// builder; registration order across producers is not significant.
func (l *Loader) Go(fn func(*Builder) error) {
	l.group.Go(func() error {
		return fn(l.builder)
	})
}

// Wait blocks until every producer finished, then freezes and returns
// the registry. It fails if any producer errored, the context was
// canceled, or the readiness timeout elapsed.
func (l *Loader) Wait() (*Registry, error) {
	done := make(chan error, 1)
	go func() {
		done <- l.group.Wait()
	}()
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("load: model registration failed: %w", err)
		}
		return l.builder.Build(), nil
	case <-l.ctx.Done():
		return nil, fmt.Errorf("load: model registration canceled: %w", l.ctx.Err())
	case <-timer.C:
		return nil, fmt.Errorf("load: model registration did not complete within %s", l.timeout)
	}
}
