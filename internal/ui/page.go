package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookqa/internal/report"

	"github.com/rs/zerolog"
)

const (
	// DefaultPageWait bounds explicit waits in page objects.
	DefaultPageWait = 10 * time.Second
	pollInterval    = 100 * time.Millisecond
	probeWait       = time.Second
)

// ErrTimeout is returned when a polled page condition never holds.
var ErrTimeout = errors.New("timed out waiting for page condition")

// Page carries what every page object shares: the driver, the site root and
// the explicit wait.
type Page struct {
	Driver  Driver
	BaseURL string
	Wait    time.Duration
	Logger  zerolog.Logger
}

// NewPage returns a Page rooted at baseURL.
func NewPage(d Driver, baseURL string, logger zerolog.Logger) Page {
	return Page{
		Driver:  d,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Wait:    DefaultPageWait,
		Logger:  logger,
	}
}

func (p Page) wait() time.Duration {
	if p.Wait <= 0 {
		return DefaultPageWait
	}
	return p.Wait
}

// Open navigates to BaseURL + path.
func (p Page) Open(ctx context.Context, path string) error {
	report.StepCtx(ctx, fmt.Sprintf("UI: open %s", path))
	p.Logger.Info().Str("path", path).Msg("Open page")
	return p.Driver.Navigate(ctx, p.BaseURL+path)
}

// URL returns the address of the current page.
func (p Page) URL(ctx context.Context) (string, error) {
	return p.Driver.Location(ctx)
}

// WaitURL polls until the current address contains fragment.
func (p Page) WaitURL(ctx context.Context, fragment string) error {
	last := ""
	err := p.eventually(ctx, p.wait(), func() (bool, error) {
		loc, err := p.Driver.Location(ctx)
		if err != nil {
			return false, err
		}
		last = loc
		return strings.Contains(loc, fragment), nil
	})
	if err != nil {
		return fmt.Errorf("url %q does not contain %q: %w", last, fragment, err)
	}
	return nil
}

// IsAt reports whether the browser reaches a URL containing path.
func (p Page) IsAt(ctx context.Context, path string) bool {
	return p.WaitURL(ctx, path) == nil
}

func (p Page) LoggedUserName(ctx context.Context) (string, error) {
	return p.text(ctx, loggedUserName)
}

func (p Page) LogOutButtonText(ctx context.Context) (string, error) {
	return p.text(ctx, logOutButton)
}

// Logout clicks "Log out" and hands over to the login page.
func (p Page) Logout(ctx context.Context) (*LoginPage, error) {
	report.StepCtx(ctx, "UI: log out")
	if err := p.click(ctx, logOutButton); err != nil {
		return nil, err
	}
	return &LoginPage{Page: p}, nil
}

func (p Page) click(ctx context.Context, sel Selector) error {
	if err := p.Driver.WaitVisible(ctx, sel); err != nil {
		return err
	}
	return p.Driver.Click(ctx, sel)
}

func (p Page) typeText(ctx context.Context, sel Selector, text string) error {
	if err := p.Driver.WaitVisible(ctx, sel); err != nil {
		return err
	}
	if err := p.Driver.Clear(ctx, sel); err != nil {
		return err
	}
	return p.Driver.SendKeys(ctx, sel, text)
}

func (p Page) text(ctx context.Context, sel Selector) (string, error) {
	if err := p.Driver.WaitVisible(ctx, sel); err != nil {
		return "", err
	}
	return p.Driver.Text(ctx, sel)
}

func (p Page) attribute(ctx context.Context, sel Selector, name string) (string, error) {
	if err := p.Driver.WaitVisible(ctx, sel); err != nil {
		return "", err
	}
	return p.Driver.Attribute(ctx, sel, name)
}

// visible probes for sel without failing the caller.
func (p Page) visible(ctx context.Context, sel Selector, within time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, within)
	defer cancel()
	return p.Driver.WaitVisible(ctx, sel) == nil
}

func (p Page) eventually(ctx context.Context, within time.Duration, cond func() (bool, error)) error {
	deadline := time.Now().Add(within)
	var lastErr error
	for {
		ok, err := cond()
		if ok {
			return nil
		}
		lastErr = err
		if time.Now().After(deadline) {
			if lastErr != nil {
				return fmt.Errorf("%w: %v", ErrTimeout, lastErr)
			}
			return ErrTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
