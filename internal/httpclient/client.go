package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout  = 10 * time.Second
	RequestIDHeader = "X-Request-Id"
)

// Hook observes every response the client receives.
type Hook func(*Response)

// Request describes one call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// JSON is marshalled as the body unless Body is set.
	JSON   interface{}
	Body   []byte
	Header http.Header
	// Token overrides the session bearer for this call only.
	Token   string
	Expect  StatusSet
	Timeout time.Duration
}

// SentRequest is what actually went over the wire.
type SentRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	URL        string
	Elapsed    time.Duration
	Request    SentRequest
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode %s: empty body", r.URL)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.URL, err)
	}
	return nil
}

// JSONMap decodes an object body. Non-object bodies yield an empty map.
func (r *Response) JSONMap() map[string]interface{} {
	m := map[string]interface{}{}
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// Reason is the status text without the code, e.g. "Not Found".
func (r *Response) Reason() string {
	return strings.TrimSpace(strings.TrimPrefix(r.Status, fmt.Sprint(r.StatusCode)))
}

type namedHook struct {
	name string
	fn   Hook
}

// Client is the shared HTTP session of a run: base URL, default headers,
// bearer token, retry transport and response hooks.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	limiter    *rate.Limiter

	mu      sync.RWMutex
	headers http.Header
	token   string
	hooks   []namedHook
}

type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	logger    *zerolog.Logger
	transport http.RoundTripper
	policy    *RetryPolicy
	rps       float64
	headers   http.Header
}

// WithTimeout bounds each attempt separately. Retry waits come on top.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = &l }
}

// WithTransport replaces the base transport under the retry layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *clientOptions) { o.policy = &p }
}

// WithRateLimit caps outgoing requests per second. Zero disables it.
func WithRateLimit(rps float64) Option {
	return func(o *clientOptions) { o.rps = rps }
}

func WithHeader(key, value string) Option {
	return func(o *clientOptions) { o.headers.Set(key, value) }
}

func New(baseURL string, opts ...Option) *Client {
	o := clientOptions{timeout: DefaultTimeout, headers: http.Header{}}
	for _, opt := range opts {
		opt(&o)
	}

	logger := log.With().Str("component", "http").Logger()
	if o.logger != nil {
		logger = *o.logger
	}
	policy := DefaultRetryPolicy()
	if o.policy != nil {
		policy = *o.policy
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Content-Type", "application/json")
	for k, v := range o.headers {
		headers[k] = v
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: NewRetryTransport(o.transport, policy, o.timeout, logger),
		},
		logger:  logger,
		headers: headers,
	}
	if o.rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.rps), 1)
	}

	logger.Info().Str("base", c.baseURL).Dur("timeout", o.timeout).Msg("Initialized HTTP client")
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetBearer attaches token to every following request until ClearBearer.
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.logger.Info().Msg("Authorization header set (Bearer ***)")
}

func (c *Client) ClearBearer() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	c.logger.Info().Msg("Authorization header cleared")
}

func (c *Client) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Install registers a response hook under name. Installing the same name
// twice is a no-op.
func (c *Client) Install(name string, hook Hook) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.hooks {
		if h.name == name {
			return false
		}
	}
	c.hooks = append(c.hooks, namedHook{name: name, fn: hook})
	c.logger.Info().Str("hook", name).Msg("Response hook installed")
	return true
}

// Do sends req and reads the whole response. A status outside req.Expect is
// logged, never returned as an error; only transport failures are.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	body := req.Body
	if body == nil && req.JSON != nil {
		body, err = json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, target, err)
		}
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, target, err)
	}
	httpReq.Header = c.headersFor(req)

	c.logger.Info().Msgf("→ %s %s", method, target)
	if len(req.Query) > 0 {
		c.logger.Debug().Str("params", req.Query.Encode()).Msg("request params")
	}
	if body != nil {
		c.logger.Debug().Str("body", Shorten(string(body), previewLen)).Msg("request body")
	}
	c.logger.Debug().Interface("headers", MaskHeaders(httpReq.Header)).Msg("request headers")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Msgf("%s %s failed", method, target)
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, target, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       respBody,
		URL:        httpResp.Request.URL.String(),
		Elapsed:    time.Since(start),
		Request: SentRequest{
			Method: method,
			URL:    target,
			Header: httpReq.Header.Clone(),
			Body:   body,
		},
	}

	c.logger.Info().Msgf("← %d %s %s elapsed=%s", resp.StatusCode, method, target, resp.Elapsed)
	if !req.Expect.Allows(resp.StatusCode) {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("expected", req.Expect.String()).
			Str("body", preview(resp)).
			Msgf("Unexpected status %d for %s %s", resp.StatusCode, method, target)
	}

	c.runHooks(resp)
	return resp, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, expect StatusSet) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Expect: expect})
}

func (c *Client) Post(ctx context.Context, path string, payload interface{}, expect StatusSet) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: payload, Expect: expect})
}

func (c *Client) Put(ctx context.Context, path string, payload interface{}, expect StatusSet) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, JSON: payload, Expect: expect})
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values, payload interface{}, expect StatusSet) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Query: query, JSON: payload, Expect: expect})
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
	c.logger.Info().Msg("Session closed")
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	raw := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		raw = c.baseURL + path
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) headersFor(req Request) http.Header {
	c.mu.RLock()
	h := c.headers.Clone()
	token := c.token
	c.mu.RUnlock()

	if req.Token != "" {
		token = req.Token
	}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	for k, v := range req.Header {
		h[http.CanonicalHeaderKey(k)] = v
	}
	if h.Get(RequestIDHeader) == "" {
		h.Set(RequestIDHeader, uuid.NewString())
	}
	return h
}

func (c *Client) runHooks(resp *Response) {
	c.mu.RLock()
	hooks := make([]namedHook, len(c.hooks))
	copy(hooks, c.hooks)
	c.mu.RUnlock()

	for _, h := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Debug().Str("hook", h.name).Interface("panic", r).Msg("Response hook failed")
				}
			}()
			h.fn(resp)
		}()
	}
}

func preview(resp *Response) string {
	if IsJSON(resp.Header.Get("Content-Type")) {
		var v interface{}
		if err := json.Unmarshal(resp.Body, &v); err == nil {
			compact, _ := json.Marshal(v)
			return Shorten(string(compact), previewLen)
		}
	}
	return Shorten(resp.Text(), previewLen)
}
