package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestHAR(host string) (*HARRecorder, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	h := NewHARRecorder(host, zerolog.Nop())
	h.now = clock.now
	return h, clock
}

func sent(id, method, url string) *network.EventRequestWillBeSent {
	return &network.EventRequestWillBeSent{
		RequestID: network.RequestID(id),
		Request: &network.Request{
			URL:     url,
			Method:  method,
			Headers: network.Headers{"Accept": "application/json"},
		},
	}
}

func TestHARRecorder_RecordsMatchingHostOnly(t *testing.T) {
	h, clock := newTestHAR("demoqa.com")

	h.Listen(sent("1", "GET", "https://demoqa.com/BookStore/v1/Books?ISBN=9781449325862"))
	h.Listen(sent("2", "GET", "https://ads.example.net/pixel.gif"))
	h.Listen(sent("3", "GET", "https://cdn.demoqa.com/app.js"))
	clock.advance(40 * time.Millisecond)
	h.Listen(&network.EventResponseReceived{
		RequestID: "1",
		Response: &network.Response{
			URL:        "https://demoqa.com/BookStore/v1/Books",
			Status:     200,
			StatusText: "OK",
			Protocol:   "h2",
			MimeType:   "application/json",
			Headers:    network.Headers{"Content-Type": "application/json"},
		},
	})
	clock.advance(10 * time.Millisecond)
	h.Listen(&network.EventLoadingFinished{RequestID: "1", EncodedDataLength: 321})

	har := h.HAR()
	require.Len(t, har.Log.Entries, 2)
	assert.Equal(t, "1.2", har.Log.Version)

	e := har.Log.Entries[0]
	assert.Equal(t, "GET", e.Request.Method)
	assert.Equal(t, "HTTP/2", e.Request.HTTPVersion)
	assert.Equal(t, []HARNameValue{{Name: "ISBN", Value: "9781449325862"}}, e.Request.QueryString)
	assert.Equal(t, 200, e.Response.Status)
	assert.Equal(t, 321, e.Response.BodySize)
	assert.Equal(t, "application/json", e.Response.Content.MimeType)
	assert.InDelta(t, 40.0, e.Timings.Wait, 0.001)
	assert.InDelta(t, 10.0, e.Timings.Receive, 0.001)
	assert.InDelta(t, 50.0, e.Time, 0.001)
	assert.Equal(t, "2025-01-02T03:04:05Z", e.StartedDateTime)

	assert.Equal(t, "https://cdn.demoqa.com/app.js", har.Log.Entries[1].Request.URL)
	assert.Equal(t, []network.RequestID{"1"}, h.textual())
}

func TestHARRecorder_RedirectStartsNewEntry(t *testing.T) {
	h, _ := newTestHAR("")

	h.Listen(sent("7", "GET", "http://demoqa.com/books"))
	redirect := sent("7", "GET", "https://demoqa.com/books")
	redirect.RedirectResponse = &network.Response{Status: 301, StatusText: "Moved Permanently"}
	h.Listen(redirect)

	har := h.HAR()
	require.Len(t, har.Log.Entries, 2)
	assert.Equal(t, 301, har.Log.Entries[0].Response.Status)
	assert.Equal(t, "https://demoqa.com/books", har.Log.Entries[0].Response.RedirectURL)
	assert.Equal(t, 0, har.Log.Entries[1].Response.Status)
}

func TestHARRecorder_FailedRequestKeepsReason(t *testing.T) {
	h, _ := newTestHAR("demoqa.com")
	h.Listen(sent("9", "GET", "https://demoqa.com/slow"))
	h.Listen(&network.EventLoadingFailed{RequestID: "9", ErrorText: "net::ERR_ABORTED"})

	har := h.HAR()
	require.Len(t, har.Log.Entries, 1)
	assert.Equal(t, "net::ERR_ABORTED", har.Log.Entries[0].Comment)
}

func TestHARRecorder_SaveWritesHARFile(t *testing.T) {
	h, clock := newTestHAR("demoqa.com")
	h.Listen(sent("1", "GET", "https://demoqa.com/Account/v1/User"))
	h.Listen(&network.EventResponseReceived{RequestID: "1", Response: &network.Response{Status: 401, MimeType: "application/json"}})
	clock.advance(time.Millisecond)
	h.Listen(&network.EventLoadingFinished{RequestID: "1"})
	h.SetBody("1", []byte(`{"code":"1200"}`))

	dir := t.TempDir()
	path, err := h.Save(dir, "ui_login")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ui_login_20250102_030405.har"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc HAR
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Log.Entries, 1)
	assert.Equal(t, `{"code":"1200"}`, doc.Log.Entries[0].Response.Content.Text)
	assert.Equal(t, 15, doc.Log.Entries[0].Response.Content.Size)
}
