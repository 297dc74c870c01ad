package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// ErrUnsupportedBrowser is returned for browsers chromedp cannot drive.
var ErrUnsupportedBrowser = errors.New("unsupported browser")

const (
	BrowserChrome  = "chrome"
	BrowserEdge    = "edge"
	BrowserFirefox = "firefox"
)

// Options configures a ChromeDriver.
type Options struct {
	Browser      string
	Headless     bool
	WindowSize   string
	Lang         string
	Incognito    bool
	ImplicitWait time.Duration
	Timeout      time.Duration
	ExecPath     string
}

// DefaultOptions mirrors the command line defaults of bookqa run.
func DefaultOptions() Options {
	return Options{
		Browser:      BrowserChrome,
		Headless:     false,
		WindowSize:   "1920,1080",
		Lang:         "en-US",
		ImplicitWait: 2 * time.Second,
		Timeout:      10 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Browser == "" {
		o.Browser = d.Browser
	}
	if o.WindowSize == "" {
		o.WindowSize = d.WindowSize
	}
	if o.Lang == "" {
		o.Lang = d.Lang
	}
	if o.ImplicitWait <= 0 {
		o.ImplicitWait = d.ImplicitWait
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	return o
}

// ParseWindowSize accepts "W,H" or "WxH".
func ParseWindowSize(s string) (int, int, error) {
	sep := ","
	if !strings.Contains(s, sep) {
		sep = "x"
	}
	w, h, ok := strings.Cut(strings.TrimSpace(s), sep)
	if !ok {
		return 0, 0, fmt.Errorf("invalid window size %q", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid window width %q", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid window height %q", h)
	}
	return width, height, nil
}

var edgeBinaries = []string{"microsoft-edge", "microsoft-edge-stable", "msedge"}

// allocatorOptions turns Options into chromedp exec allocator flags.
func allocatorOptions(o Options) ([]chromedp.ExecAllocatorOption, error) {
	o = o.withDefaults()
	width, height, err := ParseWindowSize(o.WindowSize)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", o.Lang),
		chromedp.Flag("accept-lang", o.Lang),
		chromedp.WindowSize(width, height),
	)
	if o.Incognito {
		opts = append(opts, chromedp.Flag("incognito", true))
	}

	switch strings.ToLower(o.Browser) {
	case BrowserChrome:
		if o.ExecPath != "" {
			opts = append(opts, chromedp.ExecPath(o.ExecPath))
		}
	case BrowserEdge:
		path := o.ExecPath
		if path == "" {
			for _, name := range edgeBinaries {
				if p, err := exec.LookPath(name); err == nil {
					path = p
					break
				}
			}
		}
		if path == "" {
			return nil, fmt.Errorf("%w: edge executable not found", ErrUnsupportedBrowser)
		}
		opts = append(opts, chromedp.ExecPath(path))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBrowser, o.Browser)
	}
	return opts, nil
}
