package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"
)

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"ts": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"dur": func(d time.Duration) string {
		return d.Round(time.Millisecond).String()
	},
	"isText": func(a Attachment) bool { return a.MIME != MIMEPNG },
	"str":    func(b []byte) string { return string(b) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; font-size: 13px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 6px; vertical-align: top; text-align: left; }
tr.passed td.result { color: #2e7d32; }
tr.failed td.result { color: #c62828; font-weight: bold; }
tr.skipped td.result { color: #757575; }
ol.steps { margin: 0; padding-left: 18px; }
pre { white-space: pre-wrap; max-height: 300px; overflow: auto; background: #f7f7f7; }
img.shot { max-width: 320px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Generated {{ts .Generated}}: {{.Passed}} passed, {{.Failed}} failed, {{.Skipped}} skipped.</p>
<table>
<thead>
<tr><th>Feature</th><th>Test set</th><th>Test</th><th>Start Time</th><th>Steps</th><th>Result</th><th>Duration</th><th>Screenshot</th></tr>
</thead>
<tbody>
{{range .Cases}}<tr class="{{.Status}}">
<td>{{.Feature}}</td>
<td>{{.Suite}}</td>
<td>{{.Title}}{{if .Error}}<pre>{{.Error}}</pre>{{end}}
{{range .Attachments}}{{if isText .}}<details><summary>{{.Name}}</summary><pre>{{str .Body}}</pre></details>{{end}}{{end}}</td>
<td>{{ts .Start}}</td>
<td>{{if .Steps}}<ol class="steps">{{range .Steps}}<li>{{.Name}}</li>{{end}}</ol>{{end}}</td>
<td class="result">{{.Status}}</td>
<td>{{dur .Duration}}</td>
<td>{{if .Screenshot}}<a href="{{.Screenshot}}"><img class="shot" src="{{.Screenshot}}" alt="screenshot"></a>{{end}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type reportView struct {
	Title     string
	Generated time.Time
	Passed    int
	Failed    int
	Skipped   int
	Cases     []*Case
}

// WriteHTML renders cases as a single HTML page at path. Screenshot paths
// are made relative to the report's directory.
func WriteHTML(path, title string, cases []*Case) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	view := reportView{Title: title, Generated: time.Now().UTC()}
	base := filepath.Dir(path)
	for _, c := range cases {
		switch c.Status {
		case StatusPassed:
			view.Passed++
		case StatusFailed:
			view.Failed++
		case StatusSkipped:
			view.Skipped++
		}
		if c.Screenshot != "" {
			if rel, err := filepath.Rel(base, c.Screenshot); err == nil {
				c.SetScreenshot(filepath.ToSlash(rel))
			}
		}
		view.Cases = append(view.Cases, c)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := reportTmpl.Execute(f, view); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// WriteJSON dumps cases, attachments included, to path.
func WriteJSON(path string, cases []*Case) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cases: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
