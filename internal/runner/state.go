package runner

import (
	"fmt"

	"github.com/storyspoiler/api-tests/test/pkg/auth"
)

// state is passed to every case in order. Only the create case writes
// lastCreatedStoryID.
type state struct {
	cred               auth.Credential
	lastCreatedStoryID string
}

// storyID returns the identifier captured by the create case.
func (s *state) storyID() (string, error) {
	if s.lastCreatedStoryID == "" {
		return "", fmt.Errorf("no story identifier was captured by the create case%.0w", errCaseSkip)
	}
	return s.lastCreatedStoryID, nil
}
