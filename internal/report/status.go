package report

import (
	"fmt"
	"strings"
)

// Status of a step. Higher values take precedence when rolled up to a parent.
type Status int

const (
	StatusUnknown  Status = iota // status is undefined
	StatusDisabled               // case was disabled by configuration
	StatusSkip                   // case was skipped
	StatusPass                   // case passed
	StatusFail                   // an expectation on the API was not met
	StatusError                  // failure of the test driver itself
	StatusMax                    // only used for allocating arrays
)

// Set returns the higher of the two statuses.
func (s Status) Set(set Status) Status {
	if set > s {
		return set
	}
	return s
}

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "Pass"
	case StatusSkip:
		return "Skip"
	case StatusDisabled:
		return "Disabled"
	case StatusFail:
		return "FAIL"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	ret := s.String()
	if ret == "Unknown" {
		return []byte(ret), fmt.Errorf("unknown status %d", s)
	}
	return []byte(ret), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "pass":
		*s = StatusPass
	case "skip":
		*s = StatusSkip
	case "disabled":
		*s = StatusDisabled
	case "fail":
		*s = StatusFail
	case "error":
		*s = StatusError
	case "unknown":
		*s = StatusUnknown
	default:
		return fmt.Errorf("unknown status %s", string(text))
	}
	return nil
}

// ToJUnit maps the status onto the junit testcase status attribute.
func (s Status) ToJUnit() string {
	switch s {
	case StatusPass:
		return junitPassed
	case StatusSkip, StatusDisabled:
		return junitSkipped
	case StatusFail:
		return junitFailure
	default:
		return junitError
	}
}
