package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

const maxConsoleLines = 500

// ChromeDriver implements Driver on top of a chromedp browser tab.
type ChromeDriver struct {
	opts        Options
	logger      zerolog.Logger
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	mu      sync.Mutex
	console []string
	har     *HARRecorder
}

// NewChromeDriver starts a browser and opens a tab.
func NewChromeDriver(opts Options, logger zerolog.Logger) (*ChromeDriver, error) {
	opts = opts.withDefaults()
	allocOpts, err := allocatorOptions(opts)
	if err != nil {
		return nil, err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug().Msgf(format, args...)
		}),
	)

	d := &ChromeDriver{
		opts:        opts,
		logger:      logger,
		allocCancel: allocCancel,
		ctx:         ctx,
		cancel:      cancel,
	}
	chromedp.ListenTarget(ctx, d.onEvent)

	// First Run launches the browser.
	startCtx, stop := context.WithTimeout(ctx, 30*time.Second)
	defer stop()
	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start %s: %w", opts.Browser, err)
	}
	logger.Info().
		Str("browser", opts.Browser).
		Bool("headless", opts.Headless).
		Str("window", opts.WindowSize).
		Msg("Browser started")
	return d, nil
}

func (d *ChromeDriver) onEvent(ev interface{}) {
	if msg, ok := ev.(*runtime.EventConsoleAPICalled); ok {
		var args []string
		for _, arg := range msg.Args {
			if arg.Value != nil {
				args = append(args, string(arg.Value))
			} else if arg.Description != "" {
				args = append(args, arg.Description)
			}
		}
		line := fmt.Sprintf("[%s] %s", strings.ToUpper(string(msg.Type)), strings.Join(args, " "))
		d.mu.Lock()
		if len(d.console) >= maxConsoleLines {
			d.console = d.console[1:]
		}
		d.console = append(d.console, line)
		d.mu.Unlock()
		return
	}

	d.mu.Lock()
	har := d.har
	d.mu.Unlock()
	if har != nil {
		har.Listen(ev)
	}
}

// run executes actions bounded by both the caller's ctx and timeout.
func (d *ChromeDriver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(tctx, actions...)
}

func query(sel Selector) chromedp.QueryOption {
	if sel.Kind == XPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func (d *ChromeDriver) Navigate(ctx context.Context, rawURL string) error {
	d.logger.Debug().Str("url", rawURL).Msg("Navigate")
	if err := d.run(ctx, d.opts.Timeout+20*time.Second,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", rawURL, err)
	}
	return nil
}

func (d *ChromeDriver) Location(ctx context.Context) (string, error) {
	var loc string
	err := d.run(ctx, d.opts.Timeout, chromedp.Location(&loc))
	return loc, err
}

func (d *ChromeDriver) WaitVisible(ctx context.Context, sel Selector) error {
	if err := d.run(ctx, d.opts.Timeout, chromedp.WaitVisible(sel.Value, query(sel))); err != nil {
		return fmt.Errorf("wait visible %s: %w", sel, err)
	}
	return nil
}

func (d *ChromeDriver) WaitNotPresent(ctx context.Context, sel Selector) error {
	if err := d.run(ctx, d.opts.Timeout, chromedp.WaitNotPresent(sel.Value, query(sel))); err != nil {
		return fmt.Errorf("wait not present %s: %w", sel, err)
	}
	return nil
}

func (d *ChromeDriver) Click(ctx context.Context, sel Selector) error {
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.Click(sel.Value, query(sel))); err != nil {
		return fmt.Errorf("click %s: %w", sel, err)
	}
	return nil
}

func (d *ChromeDriver) SendKeys(ctx context.Context, sel Selector, text string) error {
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.SendKeys(sel.Value, text, query(sel))); err != nil {
		return fmt.Errorf("send keys %s: %w", sel, err)
	}
	return nil
}

func (d *ChromeDriver) Clear(ctx context.Context, sel Selector) error {
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.Clear(sel.Value, query(sel))); err != nil {
		return fmt.Errorf("clear %s: %w", sel, err)
	}
	return nil
}

func (d *ChromeDriver) SetValue(ctx context.Context, sel Selector, value string) error {
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.SetValue(sel.Value, value, query(sel))); err != nil {
		return fmt.Errorf("set value %s: %w", sel, err)
	}
	return nil
}

// Select picks an option of a <select> by value and fires a change event so
// client side frameworks notice.
func (d *ChromeDriver) Select(ctx context.Context, sel Selector, value string) error {
	script := "(function(a,v){if(!a.length){return false;}var el=a[0];el.value=v;" +
		"el.dispatchEvent(new Event('change',{bubbles:true}));return el.value===v;})(" +
		sel.jsAll() + "," + jsString(value) + ")"
	var ok bool
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("select %s: %w", sel, err)
	}
	if !ok {
		return fmt.Errorf("select %s: no option %q", sel, value)
	}
	return nil
}

func (d *ChromeDriver) Text(ctx context.Context, sel Selector) (string, error) {
	var text string
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.Text(sel.Value, &text, query(sel))); err != nil {
		return "", fmt.Errorf("text %s: %w", sel, err)
	}
	return strings.TrimSpace(text), nil
}

// Texts waits for at least one match and returns the non-empty trimmed
// texts of all of them.
func (d *ChromeDriver) Texts(ctx context.Context, sel Selector) ([]string, error) {
	var texts []string
	err := d.run(ctx, d.opts.Timeout,
		chromedp.WaitReady(sel.Value, query(sel)),
		chromedp.Evaluate(sel.jsAll()+
			".map(function(e){return (e.innerText||e.textContent||'').trim();})"+
			".filter(function(s){return s.length>0;})", &texts),
	)
	if err != nil {
		return nil, fmt.Errorf("texts %s: %w", sel, err)
	}
	return texts, nil
}

func (d *ChromeDriver) Attribute(ctx context.Context, sel Selector, name string) (string, error) {
	var (
		value string
		ok    bool
	)
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.AttributeValue(sel.Value, name, &value, &ok, query(sel))); err != nil {
		return "", fmt.Errorf("attribute %s of %s: %w", name, sel, err)
	}
	return value, nil
}

func (d *ChromeDriver) Value(ctx context.Context, sel Selector) (string, error) {
	var value string
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.Value(sel.Value, &value, query(sel))); err != nil {
		return "", fmt.Errorf("value %s: %w", sel, err)
	}
	return value, nil
}

func (d *ChromeDriver) Count(ctx context.Context, sel Selector) (int, error) {
	var n int
	if err := d.run(ctx, d.opts.ImplicitWait, chromedp.Evaluate(sel.jsAll()+".length", &n)); err != nil {
		return 0, fmt.Errorf("count %s: %w", sel, err)
	}
	return n, nil
}

func (d *ChromeDriver) SetCookies(ctx context.Context, cookies ...Cookie) error {
	return d.run(ctx, d.opts.Timeout, chromedp.ActionFunc(func(ctx context.Context) error {
		var host string
		for _, c := range cookies {
			domain := c.Domain
			if domain == "" {
				if host == "" {
					var loc string
					if err := chromedp.Location(&loc).Do(ctx); err != nil {
						return fmt.Errorf("read location: %w", err)
					}
					u, err := url.Parse(loc)
					if err != nil {
						return fmt.Errorf("parse location: %w", err)
					}
					host = u.Hostname()
				}
				domain = host
			}
			path := c.Path
			if path == "" {
				path = "/"
			}
			if err := network.SetCookie(c.Name, c.Value).WithDomain(domain).WithPath(path).Do(ctx); err != nil {
				return fmt.Errorf("set cookie %s: %w", c.Name, err)
			}
		}
		return nil
	}))
}

func (d *ChromeDriver) ClearStorage(ctx context.Context) error {
	return d.run(ctx, d.opts.Timeout,
		network.ClearBrowserCookies(),
		chromedp.Evaluate("try{localStorage.clear();sessionStorage.clear();}catch(e){}", nil),
	)
}

func (d *ChromeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := d.run(ctx, d.opts.Timeout, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (d *ChromeDriver) PageSource(ctx context.Context) (string, error) {
	var html string
	if err := d.run(ctx, d.opts.Timeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (d *ChromeDriver) ConsoleLogs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.console...)
}

// RecordHAR starts capturing network traffic for host.
func (d *ChromeDriver) RecordHAR(ctx context.Context, host string) (*HARRecorder, error) {
	rec := NewHARRecorder(host, d.logger)
	if err := d.run(ctx, d.opts.Timeout, network.Enable()); err != nil {
		return nil, fmt.Errorf("enable network events: %w", err)
	}
	d.mu.Lock()
	d.har = rec
	d.mu.Unlock()
	return rec, nil
}

// SaveHAR fetches textual response bodies and writes the archive. Bodies
// the browser already evicted are skipped.
func (d *ChromeDriver) SaveHAR(ctx context.Context, dir, name string) (string, error) {
	d.mu.Lock()
	rec := d.har
	d.mu.Unlock()
	if rec == nil {
		return "", fmt.Errorf("har recording not started")
	}
	for _, id := range rec.textual() {
		var body []byte
		err := d.run(ctx, 5*time.Second, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			body, err = network.GetResponseBody(id).Do(ctx)
			return err
		}))
		if err != nil {
			d.logger.Debug().Err(err).Str("request_id", string(id)).Msg("Response body unavailable")
			continue
		}
		rec.SetBody(id, body)
	}
	return rec.Save(dir, name)
}

// Close shuts the tab and the browser down.
func (d *ChromeDriver) Close() error {
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	d.allocCancel()
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

var _ Driver = (*ChromeDriver)(nil)
