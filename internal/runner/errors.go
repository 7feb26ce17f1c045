package runner

import "errors"

var (
	// ErrSetup wraps any failure before the first case runs.
	ErrSetup = errors.New("setup failed")

	errCaseDisabled = errors.New("case is disabled by user configuration")
	errCaseSkip     = errors.New("case was skipped")
)
