// Package runner drives the Story Spoiler cases without a test framework,
// recording each step in a report tree.
package runner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/storyspoiler/api-tests/internal/config"
	"github.com/storyspoiler/api-tests/internal/report"
	"github.com/storyspoiler/api-tests/test/pkg/story"
)

const (
	suiteName       = "Story Spoiler API Tests"
	junitFilename   = "junit.xml"
	htmlFilename    = "report.html"
	resultsDirPerms = 0o755
)

type Runner struct {
	common  *runnerCommon
	results *report.Results
}

type runnerCommon struct {
	config config.Config
	log    *slog.Logger
	http   *httpLog
	client *story.Client
}

// New prepares a run against c.BaseURL. No request is sent until TestAll.
func New(c config.Config) (*Runner, error) {
	lvl := slog.LevelWarn
	if c.LogLevel != "" {
		err := lvl.UnmarshalText([]byte(c.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to parse logging level %s: %w", c.LogLevel, err)
		}
	}
	if c.Debug {
		lvl = slog.LevelDebug
	}
	if c.LogWriter == nil {
		c.LogWriter = os.Stderr
	}
	log := slog.New(slog.NewTextHandler(c.LogWriter, &slog.HandlerOptions{Level: lvl}))
	hl := &httpLog{log: log}
	client, err := story.NewClient(c.BaseURL,
		story.WithDebug(true),
		story.WithLogger(hl),
		story.WithUserAgent(c.UserAgent))
	if err != nil {
		return nil, err
	}
	return &Runner{
		common: &runnerCommon{
			config: c,
			log:    log,
			http:   hl,
			client: client,
		},
		results: report.New(suiteName, nil),
	}, nil
}

// TestAll authenticates and runs every enabled group of cases. Only setup
// failures are returned; case outcomes are in Results.
func (r *Runner) TestAll() error {
	defer r.common.client.Close()
	defer r.results.Finish()

	st := &state{}
	if err := r.TestSetup(st); err != nil {
		return fmt.Errorf("%w: %w", ErrSetup, err)
	}
	_ = r.TestScenario(st)
	_ = r.TestProperties(st)
	return nil
}

// Results is the root of the report tree.
func (r *Runner) Results() *report.Results {
	return r.results
}

// Report writes the text summary.
func (r *Runner) Report(w io.Writer) {
	r.results.WriteText(w)
}

// WriteReports writes junit.xml and report.html into dir.
func (r *Runner) WriteReports(dir string) error {
	if err := os.MkdirAll(dir, resultsDirPerms); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	errs := []error{}
	if err := writeFile(filepath.Join(dir, junitFilename), func(w io.Writer) error {
		return r.results.WriteJUnit(w, r.properties())
	}); err != nil {
		errs = append(errs, err)
	}
	if err := writeFile(filepath.Join(dir, htmlFilename), func(w io.Writer) error {
		return r.results.WriteHTML(w, report.Page{
			Title:   suiteName,
			Version: r.common.config.Version,
			Commit:  r.common.config.Commit,
			Config:  r.common.config.Report(),
		})
	}); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (r *Runner) properties() map[string]string {
	c := r.common.config
	return map[string]string{
		"baseURL":    c.BaseURL,
		"version":    c.Version,
		"commit":     c.Commit,
		"properties": fmt.Sprintf("%t", c.Tests.Properties),
	}
}

func writeFile(name string, fn func(io.Writer) error) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	err = fn(fh)
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Child runs fn as a named step below r. An error from fn marks the step as
// an error of the driver; failed expectations are recorded with Fail.
func (r *Runner) Child(name string, fn func(*Runner) error) error {
	rChild := &Runner{
		common:  r.common,
		results: report.New(name, r.results),
	}
	prev := r.common.http.capture(rChild.results.Output)
	err := fn(rChild)
	r.common.http.capture(prev)
	if err != nil {
		rChild.results.Record(report.StatusError, err)
	}
	rChild.results.Finish()
	r.common.log.Info("step complete",
		"name", rChild.results.Name,
		"status", rChild.results.Status.String())
	return err
}

func (r *Runner) Skip(err error) {
	s := report.StatusSkip
	if errors.Is(err, errCaseDisabled) {
		s = report.StatusDisabled
	}
	r.results.Record(s, nil)
	fmt.Fprintf(r.results.Output, "%s: skipping:\n  %s\n", r.results.Name,
		strings.ReplaceAll(err.Error(), "\n", "\n  "))
}

func (r *Runner) Fail(err error) {
	r.results.Record(report.StatusFail, err)
	r.common.log.Warn("case failed", "name", r.results.Name, "err", err)
}

func (r *Runner) Pass() {
	r.results.Record(report.StatusPass, nil)
}

// check records a pass or the joined expectation failures.
func (r *Runner) check(resp *story.Response, fns ...expectFn) bool {
	r.common.log.Debug("response",
		"name", r.results.Name,
		"status", resp.StatusCode,
		"duration", resp.Duration)
	if err := expect(resp, fns...); err != nil {
		r.Fail(err)
		return false
	}
	r.Pass()
	return true
}
