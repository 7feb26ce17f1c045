package report

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

const timeFormat = "Jan 2 15:04:05.000 -0700 MST"

// Page holds what the HTML report shows besides the results tree.
type Page struct {
	Title   string
	Version string
	Commit  string
	Config  string // rendered configuration with credentials censored
}

type htmlData struct {
	Page
	Results *Results
}

func (d htmlData) NumPassed() int { return d.Results.Counts[StatusPass] }
func (d htmlData) NumFailed() int {
	return d.Results.Counts[StatusFail] + d.Results.Counts[StatusError]
}
func (d htmlData) NumSkipped() int {
	return d.Results.Counts[StatusSkip] + d.Results.Counts[StatusDisabled]
}
func (d htmlData) StartTimeString() string {
	return d.Results.Start.Format(timeFormat)
}
func (d htmlData) RunTime() string {
	return d.Results.Stop.Sub(d.Results.Start).Round(time.Millisecond).String()
}

// statusClass maps a status to the CSS class of its box.
func statusClass(s Status) string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail, StatusError:
		return "fail"
	default:
		return "skip"
	}
}

var htmlTemplates = template.Must(parseTemplates())

func parseTemplates() (*template.Template, error) {
	t, err := template.New("report").
		Funcs(template.FuncMap{"statusClass": statusClass}).
		Parse(htmlSources["report"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse template report: %w", err)
	}
	if _, err := t.New("results").Parse(htmlSources["results"]); err != nil {
		return nil, fmt.Errorf("failed to parse template results: %w", err)
	}
	return t, nil
}

// WriteHTML renders the tree rooted at r as a standalone HTML page.
func (r *Results) WriteHTML(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = r.Name
	}
	return htmlTemplates.ExecuteTemplate(w, "report", htmlData{Page: p, Results: r})
}

var htmlSources = map[string]string{
	"report": `<html>
  <head>
    <title>{{ .Title }}</title>
    <style>
      body { font-family: sans-serif; margin: 1em 2em; }
      dt { font-weight: bold; }
      section { border-left: 4px solid grey; margin: .5em 0 .5em 1em; padding-left: .5em; }
      section.pass { border-color: green; }
      section.fail { border-color: red; }
      pre { background: #eee; padding: .5em; overflow-x: auto; }
    </style>
  </head>
  <body>
    <h1>{{ .Title }}</h1>
    <p>{{ .NumPassed }} passed, {{ .NumFailed }} failed, {{ .NumSkipped }} skipped</p>
    <dl>
      <dt>Started</dt><dd>{{ .StartTimeString }}</dd>
      <dt>Duration</dt><dd>{{ .RunTime }}</dd>
      <dt>Version</dt><dd>{{ .Version }} {{ .Commit }}</dd>
      {{- if ne .Config "" }}
      <dt>Configuration</dt><dd><pre>{{ .Config }}</pre></dd>
      {{- end }}
    </dl>
    {{ template "results" .Results }}
  </body>
</html>`,
	"results": `<section class="{{ statusClass .Status }}">
    <h4>{{ .Name }}: {{ .Status }}</h4>
    {{- range $err := .Errs }}
    <pre>{{ $err.Error }}</pre>
    {{- end }}
    {{- if ne .Output.String "" }}
    <details><summary>Output</summary><pre>{{ .Output.String }}</pre></details>
    {{- end }}
    {{- range $result := .Children }}
    {{ template "results" $result }}
    {{- end }}
    </section>`,
}
