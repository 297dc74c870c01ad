package report

import (
	"encoding/json"

	"bookqa/internal/httpclient"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxBody = 200_000
	APILoggerName  = "api-logger"
)

// APILogger attaches a curl rendering, the request JSON, the response meta
// and the response JSON of every API call to the recorder's current case.
type APILogger struct {
	rec     *Recorder
	maxBody int
	logger  zerolog.Logger
}

func NewAPILogger(rec *Recorder, maxBody int, logger zerolog.Logger) *APILogger {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	return &APILogger{rec: rec, maxBody: maxBody, logger: logger}
}

// Install registers the hook on client. Repeated installs are no-ops.
func (a *APILogger) Install(client *httpclient.Client) {
	if client.Install(APILoggerName, a.OnResponse) {
		a.logger.Info().Msg("API logger response hook installed")
	}
}

type responseMeta struct {
	StatusCode int               `json:"status_code"`
	Reason     string            `json:"reason"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers"`
	ElapsedMS  int64             `json:"elapsed_ms"`
}

func (a *APILogger) OnResponse(resp *httpclient.Response) {
	c := a.rec.Current()
	if c == nil {
		return
	}

	var bodyPreview string
	if httpclient.IsJSON(resp.Request.Header.Get("Content-Type")) && len(resp.Request.Body) > 0 {
		bodyPreview = httpclient.Shorten(httpclient.Pretty(resp.Request.Body), a.maxBody)
	}

	c.Attach("cURL", MIMEText, []byte(httpclient.Curl(resp.Request, bodyPreview)))
	if bodyPreview != "" {
		c.Attach("Request JSON", MIMEJSON, []byte(bodyPreview))
	}

	meta, err := json.MarshalIndent(responseMeta{
		StatusCode: resp.StatusCode,
		Reason:     resp.Reason(),
		URL:        resp.URL,
		Headers:    httpclient.MaskHeaders(resp.Header),
		ElapsedMS:  resp.Elapsed.Milliseconds(),
	}, "", "  ")
	if err != nil {
		a.logger.Debug().Err(err).Msg("API logger could not encode response meta")
	} else {
		c.Attach("Response Meta", MIMEJSON, meta)
	}

	if httpclient.IsJSON(resp.Header.Get("Content-Type")) {
		c.Attach("Response JSON", MIMEJSON, []byte(httpclient.Shorten(httpclient.Pretty(resp.Body), a.maxBody)))
	}
}
