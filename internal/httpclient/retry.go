package httpclient

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// RetryPolicy controls which requests RetryTransport repeats.
type RetryPolicy struct {
	MaxRetries    int
	BackoffFactor time.Duration
	MaxBackoff    time.Duration
	Statuses      []int
	Methods       []string
}

// DefaultRetryPolicy retries idempotent methods three times on throttling
// and gateway errors. POST is never retried.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BackoffFactor: 300 * time.Millisecond,
		MaxBackoff:    120 * time.Second,
		Statuses:      []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		Methods:       []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete, http.MethodPut},
	}
}

func (p RetryPolicy) methodAllowed(method string) bool {
	for _, m := range p.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func (p RetryPolicy) statusRetryable(code int) bool {
	for _, s := range p.Statuses {
		if s == code {
			return true
		}
	}
	return false
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.BackoffFactor
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	if p.MaxBackoff > 0 {
		exp.MaxInterval = p.MaxBackoff
	}
	exp.MaxElapsedTime = 0
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxRetries)), ctx)
}

// RetryTransport repeats idempotent requests that fail with a retryable
// status or a transport error. After the last attempt the final response is
// returned as-is. Timeout bounds each attempt, including reading its body;
// backoff waits are not counted against it.
type RetryTransport struct {
	Base    http.RoundTripper
	Policy  RetryPolicy
	Timeout time.Duration
	Logger  zerolog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryTransport(base http.RoundTripper, policy RetryPolicy, timeout time.Duration, logger zerolog.Logger) *RetryTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RetryTransport{Base: base, Policy: policy, Timeout: timeout, Logger: logger, sleep: sleepCtx}
}

func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.Policy.methodAllowed(req.Method) || t.Policy.MaxRetries <= 0 {
		return t.attempt(req)
	}
	// a body that cannot be replayed is sent once
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return t.attempt(req)
	}

	ctx := req.Context()
	b := t.Policy.backOff(ctx)
	sleep := t.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	cur := req
	for attempt := 1; ; attempt++ {
		resp, err := t.attempt(cur)
		if err == nil && !t.Policy.statusRetryable(resp.StatusCode) {
			return resp, nil
		}
		if err != nil && ctx.Err() != nil {
			return nil, err
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return resp, err
		}
		if resp != nil {
			if ra, ok := retryAfter(resp.Header.Get("Retry-After"), time.Now()); ok {
				if t.Policy.MaxBackoff > 0 && ra > t.Policy.MaxBackoff {
					ra = t.Policy.MaxBackoff
				}
				wait = ra
			}
		}

		ev := t.Logger.Warn().Int("attempt", attempt).Str("method", req.Method).Str("url", req.URL.String()).Dur("wait", wait)
		if err != nil {
			ev = ev.Err(err)
		} else {
			ev = ev.Int("status", resp.StatusCode)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		ev.Msg("Retrying request")

		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
		cur = req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			cur.Body = body
		}
	}
}

// attempt sends req once under its own deadline. The deadline stays armed
// until the response body is closed.
func (t *RetryTransport) attempt(req *http.Request) (*http.Response, error) {
	if t.Timeout <= 0 {
		return t.Base.RoundTrip(req)
	}
	ctx, cancel := context.WithTimeout(req.Context(), t.Timeout)
	resp, err := t.Base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// retryAfter parses a Retry-After header given either as delay seconds or
// as an HTTP date.
func retryAfter(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			secs = 0
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
