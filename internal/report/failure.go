package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Capturer is the part of a browser session failure capture needs.
type Capturer interface {
	Screenshot(ctx context.Context) ([]byte, error)
	PageSource(ctx context.Context) (string, error)
	Location(ctx context.Context) (string, error)
	ConsoleLogs() []string
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SafeName turns a scenario name into something usable in a file name.
func SafeName(name string) string {
	s := strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "case"
	}
	return s
}

// CaptureFailure saves a screenshot under <dir>/screenshots and attaches the
// screenshot, page source, current URL and console log to c. Every step is
// best-effort; nothing here fails the caller.
func CaptureFailure(ctx context.Context, c *Case, b Capturer, dir string, logger zerolog.Logger) {
	if c == nil || b == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("Failure capture aborted")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if png, err := b.Screenshot(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to take screenshot")
	} else {
		c.Attach("screenshot", MIMEPNG, png)
		shots := filepath.Join(dir, "screenshots")
		path := filepath.Join(shots, fmt.Sprintf("%s_%s.png", SafeName(c.Name), time.Now().UTC().Format("20060102_150405")))
		if err := os.MkdirAll(shots, 0o755); err != nil {
			logger.Warn().Err(err).Msg("Failed to create screenshots dir")
		} else if err := os.WriteFile(path, png, 0o644); err != nil {
			logger.Warn().Err(err).Msg("Failed to save screenshot")
		} else {
			c.SetScreenshot(path)
			logger.Info().Str("path", path).Msg("Screenshot saved")
		}
	}

	if src, err := b.PageSource(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to read page source")
	} else {
		c.Attach("page_source", MIMEHTML, []byte(src))
	}

	if u, err := b.Location(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to read current url")
	} else {
		c.Attach("current_url", MIMEText, []byte(u))
	}

	if logs := b.ConsoleLogs(); len(logs) > 0 {
		c.Attach("browser_console", MIMEText, []byte(strings.Join(logs, "\n")))
	}
}
