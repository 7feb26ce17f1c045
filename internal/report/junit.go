package report

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
)

const (
	junitPassed  = "passed"  // successful test
	junitSkipped = "skipped" // test intentionally skipped
	junitFailure = "failure" // test ran but failed, e.g. missed assertion
	junitError   = "error"   // test encountered an unexpected error
)

type JUnitProperty struct {
	Name  string `xml:"name,attr"`  // name or key
	Value string `xml:"value,attr"` // value of name
}

type JUnitResult struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
	Data    string `xml:",cdata"`
}

type JUnitTest struct {
	Name      string       `xml:"name,attr"`             // name of the test
	Classname string       `xml:"classname,attr"`        // hierarchy of test
	Time      string       `xml:"time,attr,omitempty"`   // duration in seconds
	Status    string       `xml:"status,attr,omitempty"` // passed, skipped, failure, or error
	Skipped   *JUnitResult `xml:"skipped,omitempty"`     // result from skipped tests
	Failure   *JUnitResult `xml:"failure,omitempty"`     // result from test failures
	Error     *JUnitResult `xml:"error,omitempty"`       // result from test errors
	SystemOut string       `xml:"system-out,omitempty"`  // output written to stdout
	SystemErr string       `xml:"system-err,omitempty"`  // output written to stderr
}

type JUnitTestSuite struct {
	Name       string          `xml:"name,attr"`                     // name of suite
	Package    string          `xml:"package,attr,omitempty"`        // hierarchy of suite
	Tests      int             `xml:"tests,attr"`                    // count of tests
	Failures   int             `xml:"failures,attr"`                 // count of failures
	Errors     int             `xml:"errors,attr"`                   // count of errors
	Disabled   int             `xml:"disabled,attr,omitempty"`       // count of disabled tests
	Skipped    int             `xml:"skipped,attr,omitempty"`        // count of skipped tests
	Time       string          `xml:"time,attr"`                     // duration in seconds
	Timestamp  string          `xml:"timestamp,attr,omitempty"`      // ISO8601
	Properties []JUnitProperty `xml:"properties>property,omitempty"` // mapping of key/value pairs associated with the test
	Testcases  []JUnitTest     `xml:"testcase,omitempty"`            // slice of tests
	SystemOut  string          `xml:"system-out,omitempty"`          // output written to stdout
	SystemErr  string          `xml:"system-err,omitempty"`          // output written to stderr
}

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`              // xml namespace and name
	Name     string           `xml:"name,attr,omitempty"`     // name of the collection of suites
	Time     string           `xml:"time,attr,omitempty"`     // duration in seconds
	Tests    int              `xml:"tests,attr,omitempty"`    // count of tests
	Errors   int              `xml:"errors,attr,omitempty"`   // count of errors
	Failures int              `xml:"failures,attr,omitempty"` // count of failures
	Skipped  int              `xml:"skipped,attr,omitempty"`  // count of skipped tests
	Disabled int              `xml:"disabled,attr,omitempty"` // count of disabled tests
	Suites   []JUnitTestSuite `xml:"testsuite,omitempty"`     // slice of suites
}

// ToJUnit converts the tree rooted at r into a single junit suite.
// Properties are emitted sorted by name.
func (r *Results) ToJUnit(props map[string]string) *JUnitTestSuites {
	tSec := fmt.Sprintf("%f", r.Stop.Sub(r.Start).Seconds())
	jTSuite := JUnitTestSuite{
		Name:      r.Name,
		Tests:     r.Total(),
		Errors:    r.Counts[StatusError],
		Failures:  r.Counts[StatusFail],
		Skipped:   r.Counts[StatusSkip],
		Disabled:  r.Counts[StatusDisabled],
		Time:      tSec,
		Timestamp: r.Start.UTC().Format("2006-01-02T15:04:05"),
		Testcases: r.ToJUnitTestCases(),
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		jTSuite.Properties = append(jTSuite.Properties, JUnitProperty{Name: k, Value: props[k]})
	}
	return &JUnitTestSuites{
		Name:     r.Name,
		Tests:    jTSuite.Tests,
		Errors:   jTSuite.Errors,
		Failures: jTSuite.Failures,
		Skipped:  jTSuite.Skipped,
		Disabled: jTSuite.Disabled,
		Time:     tSec,
		Suites:   []JUnitTestSuite{jTSuite},
	}
}

func (r *Results) ToJUnitTestCases() []JUnitTest {
	jTests := []JUnitTest{}
	if len(r.Children) > 0 {
		// recursively collect test cases from child nodes
		for _, child := range r.Children {
			jTests = append(jTests, child.ToJUnitTestCases()...)
		}
		return jTests
	}
	jTest := JUnitTest{
		Name:      r.Name,
		Time:      fmt.Sprintf("%f", r.Stop.Sub(r.Start).Seconds()),
		SystemOut: r.Output.String(),
		Status:    r.Status.ToJUnit(),
	}
	if r.Parent != nil {
		jTest.Classname = r.Parent.Name
	}
	var msg string
	if len(r.Errs) > 0 {
		msg = errors.Join(r.Errs...).Error()
	}
	switch r.Status {
	case StatusFail:
		jTest.Failure = &JUnitResult{Message: firstLine(msg), Type: "failure", Data: msg}
	case StatusError, StatusUnknown:
		jTest.Error = &JUnitResult{Message: firstLine(msg), Type: "error", Data: msg}
	case StatusSkip, StatusDisabled:
		jTest.Skipped = &JUnitResult{Message: firstLine(r.Output.String())}
	}
	return append(jTests, jTest)
}

// WriteJUnit writes the tree rooted at r as an indented junit document.
func (r *Results) WriteJUnit(w io.Writer, props map[string]string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(r.ToJUnit(props)); err != nil {
		return fmt.Errorf("failed to encode junit report: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
