package scenario

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bookqa/internal/config"
	"bookqa/internal/fixture"
	"bookqa/internal/report"
	"bookqa/internal/testutil"
	"bookqa/internal/ui"
	"bookqa/internal/ui/mocks"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T) (*testutil.DemoAPI, *Runner) {
	t.Helper()
	api := testutil.NewDemoAPI()
	t.Cleanup(api.Close)

	cfg := config.Run{Env: "test", APIBaseURL: api.URL(), UIBaseURL: "https://demoqa.test"}
	s := fixture.NewSession(cfg, fixture.Options{Logger: zerolog.Nop()})
	t.Cleanup(s.Close)

	r := NewRunner(s, Options{ReportDir: t.TempDir(), Timeout: 5 * time.Second}, zerolog.Nop())
	r.NewBrowser = func(ui.Options, zerolog.Logger) (ui.Driver, error) {
		return nil, errors.New("no browser in unit tests")
	}
	return api, r
}

type memorySink struct {
	mu    sync.Mutex
	runID string
	names []string
}

func (m *memorySink) SaveCase(_ context.Context, runID string, c *report.Case) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runID = runID
	m.names = append(m.names, c.Name)
	return nil
}

func TestRunner_PassingScenarioRecordsStepsAndAPICalls(t *testing.T) {
	_, r := newRunner(t)

	res := r.Run(context.Background(), []Scenario{{
		Name:  "list_books",
		Suite: SuiteAPI,
		Run: func(t *T) {
			t.Step("Fetch catalog")
			books, err := t.Session().Books.Books(t.Context())
			t.NoError(err, "list books")
			t.Assert().NotEmpty(books)
		},
	}})

	require.Len(t, res.Cases, 1)
	assert.True(t, res.OK())
	assert.Equal(t, 1, res.Passed)

	c := res.Cases[0]
	assert.Equal(t, report.StatusPassed, c.Status)
	assert.Contains(t, c.StepNames(), "Fetch catalog")
	_, ok := c.Attachment("Response Meta")
	assert.True(t, ok, "api logger attaches to the running case")
}

func TestRunner_SoftAssertionsCollectEveryFailure(t *testing.T) {
	_, r := newRunner(t)
	reachedEnd := false

	res := r.Run(context.Background(), []Scenario{{
		Name: "soft",
		Run: func(t *T) {
			t.Assert().Equal(1, 2, "first")
			t.Assert().True(false, "second")
			reachedEnd = true
		},
	}})

	c := res.Cases[0]
	assert.True(t, reachedEnd)
	assert.Equal(t, report.StatusFailed, c.Status)
	assert.Contains(t, c.Error, "first")
	assert.Contains(t, c.Error, "second")
	assert.False(t, res.OK())
}

func TestRunner_RequireStopsBodyAndCleanupsRunInReverse(t *testing.T) {
	_, r := newRunner(t)
	var order []string
	afterRequire := false

	res := r.Run(context.Background(), []Scenario{{
		Name: "hard",
		Run: func(t *T) {
			t.Cleanup("first", func(context.Context) error { order = append(order, "first"); return nil })
			t.Cleanup("second", func(context.Context) error {
				order = append(order, "second")
				return errors.New("ignored")
			})
			t.Cleanup("third", func(context.Context) error { panic("ignored too") })
			t.Require().Equal("a", "b")
			afterRequire = true
		},
	}})

	assert.False(t, afterRequire)
	assert.Equal(t, report.StatusFailed, res.Cases[0].Status)
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestRunner_Skip(t *testing.T) {
	_, r := newRunner(t)

	res := r.Run(context.Background(), []Scenario{{
		Name: "skipped",
		Run:  func(t *T) { t.Skip("only one page available") },
	}})

	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, report.StatusSkipped, res.Cases[0].Status)
	assert.Equal(t, "only one page available", res.Cases[0].Error)
	assert.True(t, res.OK())
}

func TestRunner_PanicFailsScenario(t *testing.T) {
	_, r := newRunner(t)

	res := r.Run(context.Background(), []Scenario{
		{Name: "panics", Run: func(*T) { panic("boom") }},
		{Name: "next", Run: func(*T) {}},
	})

	require.Len(t, res.Cases, 2)
	assert.Equal(t, report.StatusFailed, res.Cases[0].Status)
	assert.Contains(t, res.Cases[0].Error, "panic: boom")
	assert.Equal(t, report.StatusPassed, res.Cases[1].Status)
}

func TestRunner_Timeout(t *testing.T) {
	_, r := newRunner(t)
	r.Options.Timeout = 50 * time.Millisecond

	res := r.Run(context.Background(), []Scenario{{
		Name: "slow",
		Run: func(t *T) {
			<-t.Context().Done()
			time.Sleep(200 * time.Millisecond)
		},
	}})

	assert.Equal(t, report.StatusFailed, res.Cases[0].Status)
	assert.Contains(t, res.Cases[0].Error, "did not finish")
}

func TestRunner_TimedOutBodyFinishingWithinGraceStillCleansUp(t *testing.T) {
	_, r := newRunner(t)
	r.Options.Timeout = 50 * time.Millisecond
	cleaned := false

	res := r.Run(context.Background(), []Scenario{{
		Name: "late_cleanup",
		Run: func(t *T) {
			<-t.Context().Done()
			time.Sleep(50 * time.Millisecond)
			t.Step("Register cleanup late")
			t.Cleanup("late", func(context.Context) error { cleaned = true; return nil })
		},
	}})

	require.Len(t, res.Cases, 1)
	assert.Equal(t, report.StatusFailed, res.Cases[0].Status)
	assert.True(t, cleaned)
	assert.Contains(t, res.Cases[0].StepNames(), "Register cleanup late")
}

func TestRunner_AbandonedBodyCannotTouchEndedCase(t *testing.T) {
	_, r := newRunner(t)
	r.Options.Timeout = 50 * time.Millisecond
	r.Grace = 50 * time.Millisecond

	release := make(chan struct{})
	finished := make(chan struct{})
	var cleaned atomic.Bool

	res := r.Run(context.Background(), []Scenario{{
		Name: "stuck",
		Run: func(t *T) {
			defer close(finished)
			<-release
			t.Step("After teardown")
			t.Cleanup("never", func(context.Context) error { cleaned.Store(true); return nil })
		},
	}})
	close(release)
	<-finished

	require.Len(t, res.Cases, 1)
	c := res.Cases[0]
	assert.Equal(t, report.StatusFailed, c.Status)
	assert.Contains(t, c.Error, "did not finish")
	assert.NotContains(t, c.StepNames(), "After teardown")
	assert.False(t, cleaned.Load())
}

func TestRunner_BrowserStartFailure(t *testing.T) {
	_, r := newRunner(t)

	res := r.Run(context.Background(), []Scenario{{Name: "ui", UI: true, Run: func(*T) {}}})

	assert.Equal(t, report.StatusFailed, res.Cases[0].Status)
	assert.Contains(t, res.Cases[0].Error, "start browser")
}

func TestRunner_UIFailureCapturesArtifactsAndClosesBrowser(t *testing.T) {
	_, r := newRunner(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	d := mocks.NewMockDriver(ctrl)
	r.NewBrowser = func(ui.Options, zerolog.Logger) (ui.Driver, error) { return d, nil }

	d.EXPECT().Navigate(gomock.Any(), "https://demoqa.test/login").Return(errors.New("net::ERR_NAME_NOT_RESOLVED"))
	d.EXPECT().Screenshot(gomock.Any()).Return([]byte("png"), nil)
	d.EXPECT().PageSource(gomock.Any()).Return("<html></html>", nil)
	d.EXPECT().Location(gomock.Any()).Return("about:blank", nil)
	d.EXPECT().ConsoleLogs().Return([]string{"[ERROR] x"})
	d.EXPECT().Close().Return(nil)

	res := r.Run(context.Background(), []Scenario{{
		Name: "ui_login",
		UI:   true,
		Run: func(t *T) {
			t.NoError(t.Page().Open(t.Context(), "/login"), "open login")
		},
	}})

	c := res.Cases[0]
	assert.Equal(t, report.StatusFailed, c.Status)
	assert.NotEmpty(t, c.Screenshot)
	_, ok := c.Attachment("browser_console")
	assert.True(t, ok)
}

func TestRunner_SinkReceivesCases(t *testing.T) {
	_, r := newRunner(t)
	sink := &memorySink{}
	r.Sink = sink
	r.RunID = "run-1"

	r.Run(context.Background(), []Scenario{{Name: "a", Run: func(*T) {}}, {Name: "b", Run: func(*T) {}}})

	assert.Equal(t, "run-1", sink.runID)
	assert.Equal(t, []string{"a", "b"}, sink.names)
}

func TestRunner_StopsOnCancelledContext(t *testing.T) {
	_, r := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Run(ctx, []Scenario{{Name: "never", Run: func(*T) {}}})
	assert.Empty(t, res.Cases)
}

func TestFilter(t *testing.T) {
	all := []Scenario{
		{Name: "a", Suite: SuiteAPI, Tags: []string{"account"}},
		{Name: "b", Suite: SuiteAPI, Tags: []string{"bookstore", "negative"}},
		{Name: "c", Suite: SuiteUI, Tags: []string{"login"}},
		{Name: "d", Suite: SuiteE2E},
	}
	names := func(in []Scenario) []string {
		var out []string
		for _, s := range in {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, names(Filter(all, nil, nil)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(Filter(all, []string{"all"}, nil)))
	assert.Equal(t, []string{"a", "b"}, names(Filter(all, []string{"API"}, nil)))
	assert.Equal(t, []string{"c", "d"}, names(Filter(all, []string{"ui,e2e"}, nil)))
	assert.Equal(t, []string{"b"}, names(Filter(all, []string{"api"}, []string{"negative"})))
	assert.Empty(t, Filter(all, []string{"ui"}, []string{"account"}))
}
