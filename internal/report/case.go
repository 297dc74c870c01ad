package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

const (
	MIMEText = "text/plain"
	MIMEJSON = "application/json"
	MIMEHTML = "text/html"
	MIMEPNG  = "image/png"
)

// Meta describes a scenario before it runs.
type Meta struct {
	Name    string
	Title   string
	Feature string
	Suite   string
	Tags    []string
}

type Step struct {
	Name string    `json:"name"`
	At   time.Time `json:"at"`
}

type Attachment struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Body []byte `json:"body"`
}

// Case is the record of one executed scenario. Its methods are safe on a nil
// receiver so code paths without an active case can call them freely.
type Case struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Feature     string        `json:"feature"`
	Suite       string        `json:"suite"`
	Tags        []string      `json:"tags,omitempty"`
	Start       time.Time     `json:"start"`
	Duration    time.Duration `json:"duration"`
	Status      Status        `json:"status"`
	Error       string        `json:"error,omitempty"`
	Screenshot  string        `json:"screenshot,omitempty"`
	Steps       []Step        `json:"steps"`
	Attachments []Attachment  `json:"attachments,omitempty"`

	mu sync.Mutex
}

func newCase(m Meta) *Case {
	title := m.Title
	if title == "" {
		title = m.Name
	}
	return &Case{
		ID:      uuid.NewString(),
		Name:    m.Name,
		Title:   title,
		Feature: m.Feature,
		Suite:   m.Suite,
		Tags:    m.Tags,
		Start:   time.Now().UTC(),
	}
}

func (c *Case) Step(name string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Steps = append(c.Steps, Step{Name: name, At: time.Now().UTC()})
}

func (c *Case) Attach(name, mime string, body []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Attachments = append(c.Attachments, Attachment{Name: name, MIME: mime, Body: body})
}

// StepNames returns the recorded step names in order.
func (c *Case) StepNames() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.Steps))
	for i, s := range c.Steps {
		out[i] = s.Name
	}
	return out
}

// Attachment returns the first attachment with name.
func (c *Case) Attachment(name string) (Attachment, bool) {
	if c == nil {
		return Attachment{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.Attachments {
		if a.Name == name {
			return a, true
		}
	}
	return Attachment{}, false
}

func (c *Case) SetScreenshot(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.Screenshot = path
	c.mu.Unlock()
}

type ctxKey struct{}

// WithCase returns a context carrying c.
func WithCase(ctx context.Context, c *Case) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the case carried by ctx, or nil.
func FromContext(ctx context.Context) *Case {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(ctxKey{}).(*Case)
	return c
}

// StepCtx records a step on the case carried by ctx, if any.
func StepCtx(ctx context.Context, name string) {
	FromContext(ctx).Step(name)
}
