// Package report collects the outcome of a test run as a tree of steps and
// renders it as text, JUnit XML, or HTML.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Results is one node of the run tree. Leaves are individual cases.
type Results struct {
	Name     string // full name, the parent's name joined with "/"
	Children []*Results
	Parent   *Results
	Status   Status
	Errs     []error
	Output   *bytes.Buffer
	Start    time.Time
	Stop     time.Time
	Counts   [StatusMax]int
}

// New creates a results node and attaches it to parent when one is given.
func New(name string, parent *Results) *Results {
	fullName := name
	if parent != nil && parent.Name != "" {
		fullName = fmt.Sprintf("%s/%s", parent.Name, name)
	}
	r := &Results{
		Name:   fullName,
		Parent: parent,
		Output: &bytes.Buffer{},
		Start:  time.Now(),
	}
	if parent != nil {
		parent.Children = append(parent.Children, r)
	}
	return r
}

// Record sets the status of a leaf, counting it once, and stores err when
// non-nil.
func (r *Results) Record(s Status, err error) {
	r.Status = r.Status.Set(s)
	r.Counts[s]++
	if err != nil {
		r.Errs = append(r.Errs, err)
	}
}

// Finish stops the clock on r and rolls its counts and status up to the parent.
func (r *Results) Finish() {
	r.Stop = time.Now()
	if r.Parent == nil {
		return
	}
	for i := StatusUnknown; i < StatusMax; i++ {
		r.Parent.Counts[i] += r.Counts[i]
	}
	r.Parent.Status = r.Parent.Status.Set(r.Status)
}

// Count returns the number of leaves with the named status, or -1 for an
// unknown name.
func (r *Results) Count(s string) int {
	st := StatusUnknown
	err := st.UnmarshalText([]byte(s))
	if err != nil || st < 0 || st >= StatusMax {
		return -1
	}
	return r.Counts[st]
}

// Total is the number of leaves with a known status.
func (r *Results) Total() int {
	total := 0
	for i := StatusDisabled; i < StatusMax; i++ {
		total += r.Counts[i]
	}
	return total
}

// Leaves returns the cases below r in run order.
func (r *Results) Leaves() []*Results {
	if len(r.Children) == 0 {
		return []*Results{r}
	}
	ret := []*Results{}
	for _, child := range r.Children {
		ret = append(ret, child.Leaves()...)
	}
	return ret
}

// Err joins every error recorded below r.
func (r *Results) Err() error {
	errs := append([]error{}, r.Errs...)
	for _, child := range r.Children {
		if err := child.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
