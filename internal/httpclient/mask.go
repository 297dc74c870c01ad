package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
}

// MaskHeaders flattens h and replaces credentials with "***".
func MaskHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if sensitiveHeaders[strings.ToLower(k)] {
			out[k] = "***"
			continue
		}
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// IsJSON reports whether a Content-Type value denotes a JSON body.
func IsJSON(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return strings.HasPrefix(ct, "application/json") ||
		strings.HasPrefix(ct, "text/json") ||
		strings.HasPrefix(ct, "application/problem+json")
}

// Pretty indents a JSON document. Non-JSON input is returned unchanged.
func Pretty(raw []byte) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	// json.Marshal sorts map keys.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return string(raw)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Curl renders req as a curl command line with masked
// credentials. dataPreview, when set, is used as the --data-raw payload.
func Curl(req SentRequest, dataPreview string) string {
	parts := []string{fmt.Sprintf("curl -X %s '%s'", req.Method, req.URL)}

	masked := MaskHeaders(req.Header)
	keys := make([]string, 0, len(masked))
	for k := range masked {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("-H '%s: %s'", k, masked[k]))
	}
	if dataPreview != "" {
		parts = append(parts, fmt.Sprintf("--data-raw '%s'", dataPreview))
	}
	return strings.Join(parts, " \\\n  ")
}
