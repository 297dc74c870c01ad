package report

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Recorder collects the cases of a run. Scenarios run one at a time, so at
// most one case is current.
type Recorder struct {
	mu      sync.Mutex
	cases   []*Case
	current *Case
	logger  zerolog.Logger
}

func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Begin starts a new case and makes it current.
func (r *Recorder) Begin(m Meta) *Case {
	c := newCase(m)
	r.mu.Lock()
	r.cases = append(r.cases, c)
	r.current = c
	r.mu.Unlock()
	r.logger.Info().Str("case", c.Name).Msg("Case started")
	return c
}

// Current returns the running case, or nil between cases.
func (r *Recorder) Current() *Case {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// End closes the current case with status. err may be nil.
func (r *Recorder) End(status Status, err error) *Case {
	r.mu.Lock()
	c := r.current
	r.current = nil
	r.mu.Unlock()
	if c == nil {
		return nil
	}

	c.mu.Lock()
	c.Status = status
	c.Duration = time.Since(c.Start)
	if err != nil {
		c.Error = err.Error()
	}
	c.mu.Unlock()

	ev := r.logger.Info()
	if status == StatusFailed {
		ev = r.logger.Error()
	}
	ev.Str("case", c.Name).Str("status", string(status)).Dur("duration", c.Duration).Msg("Case finished")
	return c
}

func (r *Recorder) Cases() []*Case {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Case, len(r.cases))
	copy(out, r.cases)
	return out
}

// Summary counts cases per status.
func (r *Recorder) Summary() map[Status]int {
	out := map[Status]int{}
	for _, c := range r.Cases() {
		out[c.Status]++
	}
	return out
}
