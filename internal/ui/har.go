package ui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/rs/zerolog"
)

// HAR is an HTTP Archive 1.2 document.
type HAR struct {
	Log HARLog `json:"log"`
}

type HARLog struct {
	Version string     `json:"version"`
	Creator HARCreator `json:"creator"`
	Entries []HAREntry `json:"entries"`
}

type HARCreator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type HARNameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type HAREntry struct {
	StartedDateTime string      `json:"startedDateTime"`
	Time            float64     `json:"time"`
	Request         HARRequest  `json:"request"`
	Response        HARResponse `json:"response"`
	Cache           struct{}    `json:"cache"`
	Timings         HARTimings  `json:"timings"`
	Comment         string      `json:"comment,omitempty"`
}

type HARRequest struct {
	Method      string         `json:"method"`
	URL         string         `json:"url"`
	HTTPVersion string         `json:"httpVersion"`
	Headers     []HARNameValue `json:"headers"`
	QueryString []HARNameValue `json:"queryString"`
	Cookies     []HARNameValue `json:"cookies"`
	HeadersSize int            `json:"headersSize"`
	BodySize    int            `json:"bodySize"`
}

type HARResponse struct {
	Status      int            `json:"status"`
	StatusText  string         `json:"statusText"`
	HTTPVersion string         `json:"httpVersion"`
	Headers     []HARNameValue `json:"headers"`
	Cookies     []HARNameValue `json:"cookies"`
	Content     HARContent     `json:"content"`
	RedirectURL string         `json:"redirectURL"`
	HeadersSize int            `json:"headersSize"`
	BodySize    int            `json:"bodySize"`
}

type HARContent struct {
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
}

type HARTimings struct {
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
}

type harRecord struct {
	id        network.RequestID
	entry     HAREntry
	started   time.Time
	responded time.Time
	finished  bool
}

// HARRecorder collects CDP network events for one host and renders them as
// a HAR file. Feed it through chromedp.ListenTarget.
type HARRecorder struct {
	mu      sync.Mutex
	host    string
	now     func() time.Time
	logger  zerolog.Logger
	open    map[network.RequestID]*harRecord
	records []*harRecord
}

// NewHARRecorder records traffic to host and its subdomains. An empty host
// records everything.
func NewHARRecorder(host string, logger zerolog.Logger) *HARRecorder {
	return &HARRecorder{
		host:   strings.ToLower(host),
		now:    time.Now,
		logger: logger,
		open:   map[network.RequestID]*harRecord{},
	}
}

func (h *HARRecorder) matches(raw string) bool {
	if h.host == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == h.host || strings.HasSuffix(host, "."+h.host)
}

// Listen handles one CDP event.
func (h *HARRecorder) Listen(ev interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		if e.Request == nil || !h.matches(e.Request.URL) {
			return
		}
		now := h.now()
		if prev, ok := h.open[e.RequestID]; ok && e.RedirectResponse != nil {
			h.respond(prev, e.RedirectResponse, now)
			prev.entry.Response.RedirectURL = e.Request.URL
			h.finish(prev, now, 0)
		}
		rec := &harRecord{id: e.RequestID, started: now}
		rec.entry.StartedDateTime = now.UTC().Format(time.RFC3339Nano)
		rec.entry.Request = HARRequest{
			Method:      e.Request.Method,
			URL:         e.Request.URL,
			HTTPVersion: "HTTP/1.1",
			Headers:     nameValues(e.Request.Headers),
			QueryString: queryString(e.Request.URL),
			Cookies:     []HARNameValue{},
			HeadersSize: -1,
			BodySize:    -1,
		}
		rec.entry.Response = HARResponse{
			Headers:     []HARNameValue{},
			Cookies:     []HARNameValue{},
			HeadersSize: -1,
			BodySize:    -1,
		}
		h.open[e.RequestID] = rec
		h.records = append(h.records, rec)

	case *network.EventResponseReceived:
		if rec, ok := h.open[e.RequestID]; ok && e.Response != nil {
			h.respond(rec, e.Response, h.now())
		}

	case *network.EventLoadingFinished:
		if rec, ok := h.open[e.RequestID]; ok {
			h.finish(rec, h.now(), int(e.EncodedDataLength))
		}

	case *network.EventLoadingFailed:
		if rec, ok := h.open[e.RequestID]; ok {
			rec.entry.Comment = e.ErrorText
			h.finish(rec, h.now(), 0)
		}
	}
}

func (h *HARRecorder) respond(rec *harRecord, r *network.Response, at time.Time) {
	version := httpVersion(r.Protocol)
	rec.responded = at
	rec.entry.Request.HTTPVersion = version
	rec.entry.Response.Status = int(r.Status)
	rec.entry.Response.StatusText = r.StatusText
	rec.entry.Response.HTTPVersion = version
	rec.entry.Response.Headers = nameValues(r.Headers)
	rec.entry.Response.Content.MimeType = r.MimeType
	rec.entry.Timings.Wait = millis(at.Sub(rec.started))
}

func (h *HARRecorder) finish(rec *harRecord, at time.Time, size int) {
	if rec.responded.IsZero() {
		rec.responded = at
	}
	rec.finished = true
	rec.entry.Response.BodySize = size
	rec.entry.Response.Content.Size = size
	rec.entry.Timings.Receive = millis(at.Sub(rec.responded))
	rec.entry.Time = millis(at.Sub(rec.started))
	delete(h.open, rec.id)
}

// textual reports finished entries whose bodies are worth fetching.
func (h *HARRecorder) textual() []network.RequestID {
	h.mu.Lock()
	defer h.mu.Unlock()
	var ids []network.RequestID
	for _, rec := range h.records {
		mt := rec.entry.Response.Content.MimeType
		if rec.finished && rec.entry.Response.RedirectURL == "" &&
			(strings.Contains(mt, "json") || strings.HasPrefix(mt, "text/")) {
			ids = append(ids, rec.id)
		}
	}
	return ids
}

// SetBody stores a response body fetched after the fact.
func (h *HARRecorder) SetBody(id network.RequestID, body []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.records) - 1; i >= 0; i-- {
		if h.records[i].id == id {
			h.records[i].entry.Response.Content.Text = string(body)
			if h.records[i].entry.Response.Content.Size == 0 {
				h.records[i].entry.Response.Content.Size = len(body)
			}
			return
		}
	}
}

// HAR renders everything recorded so far.
func (h *HARRecorder) HAR() HAR {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := make([]HAREntry, 0, len(h.records))
	for _, rec := range h.records {
		entries = append(entries, rec.entry)
	}
	return HAR{Log: HARLog{
		Version: "1.2",
		Creator: HARCreator{Name: "bookqa", Version: "1.0"},
		Entries: entries,
	}}
}

// Save writes the archive to <dir>/<name>_<timestamp>.har.
func (h *HARRecorder) Save(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create har dir: %w", err)
	}
	doc := h.HAR()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode har: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.har", name, h.now().UTC().Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write har: %w", err)
	}
	h.logger.Info().Str("path", path).Int("entries", len(doc.Log.Entries)).Msg("HAR saved")
	return path, nil
}

func nameValues(headers network.Headers) []HARNameValue {
	out := make([]HARNameValue, 0, len(headers))
	for k, v := range headers {
		out = append(out, HARNameValue{Name: k, Value: fmt.Sprint(v)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func queryString(raw string) []HARNameValue {
	out := []HARNameValue{}
	u, err := url.Parse(raw)
	if err != nil {
		return out
	}
	q := u.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range q[k] {
			out = append(out, HARNameValue{Name: k, Value: v})
		}
	}
	return out
}

func httpVersion(protocol string) string {
	switch strings.ToLower(protocol) {
	case "", "http/1.1":
		return "HTTP/1.1"
	case "h2":
		return "HTTP/2"
	case "h3":
		return "HTTP/3"
	}
	return strings.ToUpper(protocol)
}

func millis(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return float64(d.Microseconds()) / 1000
}
