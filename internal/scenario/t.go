// Package scenario runs catalog scenarios one at a time and records each as
// a report case.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"bookqa/internal/config"
	"bookqa/internal/fixture"
	"bookqa/internal/report"
	"bookqa/internal/ui"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// T is handed to a scenario body. It satisfies testify's TestingT, so
// t.Assert() collects soft failures and t.Require() stops the scenario.
type T struct {
	ctx      context.Context
	name     string
	rc       *report.Case
	session  *fixture.Session
	browser  ui.Driver
	options  Options
	teardown *fixture.Teardown
	logger   zerolog.Logger

	mu       sync.Mutex
	failures []string
	failed   bool
	skipped  bool
	skipNote string
	sealed   bool
}

func (t *T) Name() string { return t.name }
func (t *T) Context() context.Context { return t.ctx }
func (t *T) Session() *fixture.Session { return t.session }
func (t *T) Config() config.Run { return t.session.Config }
func (t *T) Options() Options { return t.options }
func (t *T) Logger() *zerolog.Logger { return &t.logger }
func (t *T) Case() *report.Case { return t.rc }
func (t *T) Assert() *assert.Assertions { return assert.New(t) }
func (t *T) Require() *require.Assertions { return require.New(t) }

// Helper is a no-op; testify calls it when present.
func (t *T) Helper() {}

// Browser returns the scenario's browser. Only UI scenarios get one.
func (t *T) Browser() ui.Driver {
	if t.browser == nil {
		t.Fatalf("scenario %s has no browser; mark it UI", t.name)
	}
	return t.browser
}

// Page is a page object base rooted at the configured UI address.
func (t *T) Page() ui.Page {
	return ui.NewPage(t.Browser(), t.Config().UIBaseURL, t.logger)
}

// Step adds a named step to the report.
func (t *T) Step(name string) {
	t.logger.Info().Msg(name)
	if t.isSealed() {
		return
	}
	t.rc.Step(name)
}

func (t *T) Log(args ...any) {
	t.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func (t *T) Logf(format string, args ...any) {
	t.logger.Info().Msgf(format, args...)
}

// Attach adds a file to the report case.
func (t *T) Attach(name, mime string, body []byte) {
	if t.isSealed() {
		return
	}
	t.rc.Attach(name, mime, body)
}

// Cleanup registers fn to run after the scenario, last registered first.
// Once teardown has started, new cleanups are dropped.
func (t *T) Cleanup(name string, fn func(context.Context) error) {
	if t.isSealed() {
		t.logger.Warn().Str("cleanup", name).Msg("Cleanup registered after teardown; dropped")
		return
	}
	t.teardown.Add(name, fn)
}

// seal stops the case from taking further steps or cleanups.
func (t *T) seal() {
	t.mu.Lock()
	t.sealed = true
	t.mu.Unlock()
}

func (t *T) isSealed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sealed
}

func (t *T) Errorf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	t.logger.Error().Msg(msg)
	t.mu.Lock()
	t.failures = append(t.failures, msg)
	t.failed = true
	t.mu.Unlock()
}

func (t *T) Fail() {
	t.mu.Lock()
	t.failed = true
	t.mu.Unlock()
}

func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// FailNow stops the scenario goroutine. Registered cleanups still run.
func (t *T) FailNow() {
	t.Fail()
	runtime.Goexit()
}

func (t *T) Fatalf(format string, args ...any) {
	t.Errorf(format, args...)
	t.FailNow()
}

// NoError fails the scenario immediately when err is non-nil.
func (t *T) NoError(err error, what string) {
	if err != nil {
		t.Fatalf("%s: %v", what, err)
	}
}

func (t *T) Skip(args ...any) {
	t.mu.Lock()
	t.skipped = true
	t.skipNote = strings.TrimSuffix(fmt.Sprintln(args...), "\n")
	t.mu.Unlock()
	t.logger.Warn().Str("reason", t.skipNote).Msg("Scenario skipped")
	runtime.Goexit()
}

func (t *T) Skipf(format string, args ...any) {
	t.Skip(fmt.Sprintf(format, args...))
}

// outcome folds the collected state into a report status.
func (t *T) outcome() (report.Status, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.failed:
		msg := strings.Join(t.failures, "\n")
		if msg == "" {
			msg = "scenario failed"
		}
		return report.StatusFailed, errors.New(msg)
	case t.skipped:
		return report.StatusSkipped, errors.New(t.skipNote)
	}
	return report.StatusPassed, nil
}
