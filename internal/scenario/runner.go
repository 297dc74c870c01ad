package scenario

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime/debug"
	"time"

	"bookqa/internal/fixture"
	"bookqa/internal/report"
	"bookqa/internal/ui"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 5 * time.Minute

// DefaultGrace is how long a timed out body may keep running before the
// runner tears the scenario down without it.
const DefaultGrace = 5 * time.Second

// Options are the run-wide knobs scenarios and the runner read.
type Options struct {
	ReportDir   string
	Browser     ui.Options
	HAR         bool
	CleanupUser bool
	Timeout     time.Duration
}

// BrowserFactory opens a browser for one UI scenario.
type BrowserFactory func(ui.Options, zerolog.Logger) (ui.Driver, error)

// ChromeBrowser is the production BrowserFactory.
func ChromeBrowser(o ui.Options, logger zerolog.Logger) (ui.Driver, error) {
	return ui.NewChromeDriver(o, logger)
}

// CaseSink persists finished cases, e.g. to the results database.
type CaseSink interface {
	SaveCase(ctx context.Context, runID string, c *report.Case) error
}

type harDriver interface {
	RecordHAR(ctx context.Context, host string) (*ui.HARRecorder, error)
	SaveHAR(ctx context.Context, dir, name string) (string, error)
}

// Result summarises a run.
type Result struct {
	Passed  int
	Failed  int
	Skipped int
	Cases   []*report.Case
}

func (r Result) OK() bool { return r.Failed == 0 }

// Runner executes scenarios sequentially against one fixture session.
type Runner struct {
	Session    *fixture.Session
	Options    Options
	NewBrowser BrowserFactory
	Sink       CaseSink
	RunID      string
	Grace      time.Duration

	logger zerolog.Logger
}

func NewRunner(s *fixture.Session, opts Options, logger zerolog.Logger) *Runner {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ReportDir == "" {
		opts.ReportDir = "target"
	}
	return &Runner{
		Session:    s,
		Options:    opts,
		NewBrowser: ChromeBrowser,
		Grace:      DefaultGrace,
		logger:     logger,
	}
}

// Run executes every scenario in order and returns the tally.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) Result {
	var res Result
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			r.logger.Warn().Err(ctx.Err()).Msg("Run interrupted")
			break
		}
		c := r.runOne(ctx, sc)
		switch c.Status {
		case report.StatusPassed:
			res.Passed++
		case report.StatusSkipped:
			res.Skipped++
		default:
			res.Failed++
		}
		res.Cases = append(res.Cases, c)
	}
	r.logger.Info().
		Int("passed", res.Passed).
		Int("failed", res.Failed).
		Int("skipped", res.Skipped).
		Msg("Run finished")
	return res
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) *report.Case {
	logger := r.logger.With().Str("scenario", sc.Name).Logger()
	rc := r.Session.Recorder.Begin(report.Meta{
		Name:    sc.Name,
		Title:   sc.Title,
		Feature: sc.Feature,
		Suite:   sc.Suite,
		Tags:    sc.Tags,
	})
	logger.Info().Msg("=== test start ===")
	defer logger.Info().Msg("=== test end ===")

	sctx, cancel := context.WithTimeout(report.WithCase(ctx, rc), r.Options.Timeout)
	defer cancel()

	t := &T{
		ctx:      sctx,
		name:     sc.Name,
		rc:       rc,
		session:  r.Session,
		options:  r.Options,
		teardown: fixture.NewTeardown(logger),
		logger:   logger,
	}

	var har harDriver
	if sc.UI {
		b, err := r.NewBrowser(r.Options.Browser, logger.With().Str("component", "ui").Logger())
		if err != nil {
			return r.finish(ctx, r.Session.Recorder.End(report.StatusFailed, fmt.Errorf("start browser: %w", err)))
		}
		t.browser = b
		defer func() {
			if err := b.Close(); err != nil {
				logger.Debug().Err(err).Msg("Browser close failed")
			}
		}()
		if hd, ok := b.(harDriver); ok && r.Options.HAR {
			if _, err := hd.RecordHAR(sctx, hostOf(r.Session.Config.UIBaseURL)); err != nil {
				logger.Warn().Err(err).Msg("HAR recording unavailable")
			} else {
				har = hd
			}
		}
	}

	r.execute(sctx, t, sc)

	status, err := t.outcome()
	if status == report.StatusFailed && t.browser != nil {
		report.CaptureFailure(ctx, rc, t.browser, r.Options.ReportDir, logger)
	}
	if har != nil {
		if path, herr := har.SaveHAR(ctx, filepath.Join(r.Options.ReportDir, "har"), report.SafeName(sc.Name)); herr != nil {
			logger.Warn().Err(herr).Msg("HAR not saved")
		} else {
			rc.Attach("har", report.MIMEText, []byte(path))
		}
	}

	// Cleanups get a fresh deadline so a timed out scenario still tidies up.
	cctx, ccancel := context.WithTimeout(report.WithCase(context.WithoutCancel(ctx), rc), time.Minute)
	t.seal()
	t.teardown.Run(cctx)
	ccancel()

	return r.finish(ctx, r.Session.Recorder.End(status, err))
}

// execute runs the body on its own goroutine so FailNow and Skip can unwind
// it with runtime.Goexit.
func (r *Runner) execute(ctx context.Context, t *T, sc Scenario) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if p := recover(); p != nil {
				t.Errorf("panic: %v\n%s", p, debug.Stack())
			}
		}()
		sc.Run(t)
	}()

	select {
	case <-done:
		return
	case <-ctx.Done():
		t.Errorf("scenario did not finish: %v", ctx.Err())
	}

	grace := time.NewTimer(r.Grace)
	defer grace.Stop()
	select {
	case <-done:
	case <-grace.C:
		t.logger.Warn().Dur("grace", r.Grace).Msg("Scenario body abandoned; later steps and cleanups are dropped")
	}
}

func (r *Runner) finish(ctx context.Context, c *report.Case) *report.Case {
	if r.Sink != nil && c != nil {
		if err := r.Sink.SaveCase(ctx, r.RunID, c); err != nil {
			r.logger.Warn().Err(err).Str("scenario", c.Name).Msg("Failed to store case result")
		}
	}
	return c
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
