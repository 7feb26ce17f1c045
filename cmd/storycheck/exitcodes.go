package main

import "strconv"

// Exit codes for storycheck
const (
	// ExitSuccess indicates every case passed or was skipped
	ExitSuccess = 0

	// ExitTestFailure indicates one or more cases failed
	ExitTestFailure = 1

	// ExitSetupError indicates configuration or authentication failed
	ExitSetupError = 2
)

// exitError carries an exit code out of a command. err is nil when the
// failure was already reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit status " + strconv.Itoa(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
