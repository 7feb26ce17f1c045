package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	g "github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/types"

	"github.com/storyspoiler/api-tests/internal/report"
	"github.com/storyspoiler/api-tests/test/pkg/auth"
)

type (
	// httpDebugWriter collects the client's traffic until the reporter
	// claims it for the spec that produced it.
	httpDebugWriter struct {
		mu    sync.Mutex
		debug bool
		buf   bytes.Buffer
	}

	httpDebugLogger struct {
		w io.Writer
		l *log.Logger
	}

	htmlReporter struct {
		htmlReportFilename string
		debugLogger        *httpDebugWriter
		setupOutput        string
		specOutput         map[string]string
	}
)

func newHTTPDebugWriter(debug bool) *httpDebugWriter {
	return &httpDebugWriter{debug: debug}
}

func (writer *httpDebugWriter) Write(b []byte) (int, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	writer.buf.Write(b)
	if writer.debug {
		fmt.Print(string(b))
	}
	return len(b), nil
}

// Drain returns everything written since the last call.
func (writer *httpDebugWriter) Drain() string {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	s := writer.buf.String()
	writer.buf.Reset()
	return s
}

func newHTTPDebugLogger(f io.Writer) *httpDebugLogger {
	return &httpDebugLogger{w: f, l: log.New(f, "", log.Ldate|log.Lmicroseconds)}
}

func (l *httpDebugLogger) Errorf(format string, v ...interface{}) {
	l.output("ERROR "+format, v...)
}

func (l *httpDebugLogger) Warnf(format string, v ...interface{}) {
	l.output("WARN "+format, v...)
}

func (l *httpDebugLogger) Debugf(format string, v ...interface{}) {
	l.output("DEBUG "+format, v...)
}

// output redacts secrets from the formatted message, not only the format.
func (l *httpDebugLogger) output(format string, v ...interface{}) {
	l.l.Print(auth.Redact(fmt.Sprintf(format, v...)))
}

func newHTMLReporter(htmlReportFilename string) *htmlReporter {
	return &htmlReporter{
		htmlReportFilename: htmlReportFilename,
		debugLogger:        httpWriter,
		specOutput:         map[string]string{},
	}
}

// beforeReport claims traffic sent outside of any spec, i.e. by BeforeSuite.
func (reporter *htmlReporter) beforeReport(r g.SpecReport) {
	if s := reporter.debugLogger.Drain(); s != "" {
		reporter.setupOutput += s
	}
}

func (reporter *htmlReporter) afterReport(r g.SpecReport) {
	reporter.specOutput[r.FullText()] = reporter.debugLogger.Drain()
}

func (reporter *htmlReporter) endSuite(r g.Report) error {
	reporter.setupOutput += reporter.debugLogger.Drain()
	results := resultsFromReport(r, reporter.setupOutput, reporter.specOutput)

	name, err := filepath.Abs(reporter.htmlReportFilename)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	defer fh.Close()

	err = results.WriteHTML(fh, report.Page{
		Title:   suiteDescription,
		Version: Version,
		Commit:  cfg.Commit,
		Config:  cfg.Report(),
	})
	if err != nil {
		return err
	}
	fmt.Printf("HTML report was created: %s\n", name)
	return nil
}

// resultsFromReport rebuilds the container hierarchy of the suite as a
// results tree. BeforeSuite becomes the "authenticate" leaf.
func resultsFromReport(r g.Report, setupOutput string, specOutput map[string]string) *report.Results {
	root := report.New(r.SuiteDescription, nil)
	containers := map[string]*report.Results{}
	for _, spec := range r.SpecReports {
		var parent *report.Results
		var leaf *report.Results
		switch spec.LeafNodeType {
		case types.NodeTypeBeforeSuite:
			leaf = report.New("authenticate", root)
			leaf.Output.WriteString(setupOutput)
		case types.NodeTypeIt:
			parent = root
			key := ""
			for i, text := range spec.ContainerHierarchyTexts {
				if i == 0 && text == r.SuiteDescription {
					continue
				}
				key += "/" + text
				c, ok := containers[key]
				if !ok {
					c = report.New(text, parent)
					containers[key] = c
				}
				parent = c
			}
			leaf = report.New(spec.LeafNodeText, parent)
			leaf.Output.WriteString(specOutput[spec.FullText()])
		default:
			continue
		}
		status, err := specStatus(spec)
		leaf.Record(status, err)
		if status == report.StatusSkip || status == report.StatusDisabled {
			fmt.Fprintf(leaf.Output, "skipped: %s\n", spec.Failure.Message)
		}
		leaf.Start, leaf.Stop = spec.StartTime, spec.EndTime
	}
	finishTree(root)
	root.Start, root.Stop = r.StartTime, r.EndTime
	return root
}

func specStatus(spec types.SpecReport) (report.Status, error) {
	switch spec.State {
	case types.SpecStatePassed:
		return report.StatusPass, nil
	case types.SpecStateSkipped:
		return report.StatusSkip, nil
	case types.SpecStatePending:
		return report.StatusDisabled, nil
	case types.SpecStateFailed:
		return report.StatusFail, errors.New(strings.TrimSpace(spec.Failure.Message))
	case types.SpecStatePanicked, types.SpecStateAborted, types.SpecStateInterrupted:
		return report.StatusError, fmt.Errorf("%s: %s", spec.State, strings.TrimSpace(spec.Failure.Message))
	default:
		return report.StatusUnknown, nil
	}
}

// finishTree rolls counts up from the leaves while keeping the times taken
// from the spec reports.
func finishTree(r *report.Results) {
	for _, child := range r.Children {
		finishTree(child)
	}
	start, stop := r.Start, r.Stop
	r.Finish()
	if len(r.Children) == 0 {
		r.Start, r.Stop = start, stop
		return
	}
	r.Start, r.Stop = r.Children[0].Start, r.Children[len(r.Children)-1].Stop
}
