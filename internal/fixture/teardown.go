package fixture

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type teardownFn struct {
	name string
	fn   func(context.Context) error
}

// Teardown runs registered cleanups in reverse order. A failing or panicking
// cleanup is logged and the rest still run.
type Teardown struct {
	mu     sync.Mutex
	fns    []teardownFn
	logger zerolog.Logger
}

func NewTeardown(logger zerolog.Logger) *Teardown {
	return &Teardown{logger: logger}
}

func (t *Teardown) Add(name string, fn func(context.Context) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fns = append(t.fns, teardownFn{name: name, fn: fn})
}

// Run executes and forgets every registered cleanup.
func (t *Teardown) Run(ctx context.Context) {
	t.mu.Lock()
	fns := t.fns
	t.fns = nil
	t.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		t.run(ctx, fns[i])
	}
}

func (t *Teardown) run(ctx context.Context, f teardownFn) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Debug().Str("cleanup", f.name).Interface("panic", r).Msg("Cleanup panicked")
		}
	}()
	if err := f.fn(ctx); err != nil {
		t.logger.Debug().Str("cleanup", f.name).Err(err).Msg("Cleanup failed")
	}
}
