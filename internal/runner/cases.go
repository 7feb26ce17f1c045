package runner

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/storyspoiler/api-tests/schema"
	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

const (
	nonexistentEditID   = "123"
	nonexistentDeleteID = "999"
)

var (
	createdStory = v1.StoryRequest{
		Title:       "Test Story",
		Description: "This is a test story.",
	}
	editedStory = v1.StoryRequest{
		Title:       "Updated Test Story",
		Description: "This is an updated test story.",
	}
	emptyStory         = v1.StoryRequest{}
	nonexistentEdition = v1.StoryRequest{
		Title:       "Updated Story",
		Description: "This is an updated story.",
	}
)

func (r *Runner) TestSetup(st *state) error {
	return r.Child("authenticate", func(r *Runner) error {
		c := r.common.config
		cred, err := r.common.client.Authenticate(c.Username, c.Password)
		if err != nil {
			return err
		}
		st.cred = cred
		r.Pass()
		return nil
	})
}

// TestScenario runs the seven ordered cases. Edit and delete of the created
// story are skipped when create did not yield an identifier.
func (r *Runner) TestScenario(st *state) error {
	return r.Child("scenario", func(r *Runner) error {
		if !r.common.config.Tests.Scenario {
			r.Skip(fmt.Errorf("scenario is disabled in the configuration%.0w", errCaseDisabled))
			return nil
		}
		// errors are recorded on each case, later cases still run
		_ = r.TestCreate(st)
		_ = r.TestEdit(st)
		_ = r.TestList(st)
		_ = r.TestDelete(st)
		_ = r.TestCreateInvalid(st)
		_ = r.TestEditNonexistent(st)
		_ = r.TestDeleteNonexistent(st)
		return nil
	})
}

func (r *Runner) TestCreate(st *state) error {
	return r.Child("create", func(r *Runner) error {
		resp, err := r.common.client.Create(st.cred, createdStory)
		if err != nil {
			return err
		}
		id := ""
		r.check(resp,
			expectStatus(http.StatusCreated),
			expectSchema(schema.StoryCreatedSchema()),
			expectStoryID(&id),
			expectMsg(v1.MsgCreated))
		// keep the identifier even when another expectation failed so the
		// story is still edited and deleted
		st.lastCreatedStoryID = id
		return nil
	})
}

func (r *Runner) TestEdit(st *state) error {
	return r.Child("edit", func(r *Runner) error {
		id, err := st.storyID()
		if err != nil {
			r.Skip(err)
			return nil
		}
		resp, err := r.common.client.Edit(st.cred, id, editedStory)
		if err != nil {
			return err
		}
		r.check(resp,
			expectStatus(http.StatusOK),
			expectSchema(schema.EnvelopeSchema()),
			expectMsg(v1.MsgEdited))
		return nil
	})
}

func (r *Runner) TestList(st *state) error {
	return r.Child("list", func(r *Runner) error {
		resp, err := r.common.client.List(st.cred)
		if err != nil {
			return err
		}
		r.check(resp,
			expectStatus(http.StatusOK),
			expectSchema(schema.StoryListSchema()),
			expectNonEmptyArray())
		return nil
	})
}

func (r *Runner) TestDelete(st *state) error {
	return r.Child("delete", func(r *Runner) error {
		id, err := st.storyID()
		if err != nil {
			r.Skip(err)
			return nil
		}
		resp, err := r.common.client.Delete(st.cred, id)
		if err != nil {
			return err
		}
		r.check(resp,
			expectStatus(http.StatusOK),
			expectSchema(schema.EnvelopeSchema()),
			expectMsg(v1.MsgDeleted))
		return nil
	})
}

func (r *Runner) TestCreateInvalid(st *state) error {
	return r.Child("create without required fields", func(r *Runner) error {
		resp, err := r.common.client.Create(st.cred, emptyStory)
		if err != nil {
			return err
		}
		r.check(resp, expectStatus(http.StatusBadRequest))
		return nil
	})
}

func (r *Runner) TestEditNonexistent(st *state) error {
	return r.Child("edit nonexistent", func(r *Runner) error {
		resp, err := r.common.client.Edit(st.cred, nonexistentEditID, nonexistentEdition)
		if err != nil {
			return err
		}
		r.check(resp,
			expectStatus(http.StatusNotFound),
			expectMsg(v1.MsgNoSpoilers))
		return nil
	})
}

func (r *Runner) TestDeleteNonexistent(st *state) error {
	return r.Child("delete nonexistent", func(r *Runner) error {
		resp, err := r.common.client.Delete(st.cred, nonexistentDeleteID)
		if err != nil {
			return err
		}
		r.check(resp,
			expectStatus(http.StatusBadRequest),
			expectMsg(v1.MsgUnableToDelete))
		return nil
	})
}

// TestProperties runs the optional cases that create and delete additional
// stories.
func (r *Runner) TestProperties(st *state) error {
	return r.Child("properties", func(r *Runner) error {
		if !r.common.config.Tests.Properties {
			r.Skip(fmt.Errorf("property cases are disabled in the configuration%.0w", errCaseDisabled))
			return nil
		}
		_ = r.TestUniqueIDs(st)
		_ = r.TestDoubleDelete(st)
		_ = r.TestListAfterCreate(st)
		_ = r.TestInvalidCreate(st)
		return nil
	})
}

// uniqueStory returns a valid story whose title no earlier run used.
func uniqueStory() v1.StoryRequest {
	return v1.StoryRequest{
		Title:       "Test Story " + uuid.NewString(),
		Description: "This is a test story.",
	}
}

// createFresh creates a story and returns its identifier.
func (r *Runner) createFresh(st *state) (string, error) {
	resp, err := r.common.client.Create(st.cred, uniqueStory())
	if err != nil {
		return "", err
	}
	id := ""
	if err := expect(resp,
		expectStatus(http.StatusCreated),
		expectStoryID(&id)); err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	return id, nil
}

// cleanup deletes stories created by property cases. Failures are logged
// only.
func (r *Runner) cleanup(st *state, ids ...string) {
	for _, id := range ids {
		resp, err := r.common.client.Delete(st.cred, id)
		if err == nil {
			err = expect(resp, expectStatus(http.StatusOK))
		}
		if err != nil {
			r.common.log.Warn("failed to delete story", "storyId", id, "err", err)
		}
	}
}

func (r *Runner) TestUniqueIDs(st *state) error {
	return r.Child("unique identifiers", func(r *Runner) error {
		idA, err := r.createFresh(st)
		if err != nil {
			r.Fail(err)
			return nil
		}
		defer r.cleanup(st, idA)
		idB, err := r.createFresh(st)
		if err != nil {
			r.Fail(err)
			return nil
		}
		defer r.cleanup(st, idB)
		if idA == idB {
			r.Fail(fmt.Errorf("two creates returned the same storyId %s", idA))
			return nil
		}
		r.Pass()
		return nil
	})
}

func (r *Runner) TestDoubleDelete(st *state) error {
	return r.Child("double delete", func(r *Runner) error {
		id, err := r.createFresh(st)
		if err != nil {
			r.Fail(err)
			return nil
		}
		deleted := false
		defer func() {
			if !deleted {
				r.cleanup(st, id)
			}
		}()
		resp, err := r.common.client.Delete(st.cred, id)
		if err != nil {
			return err
		}
		if err := expect(resp,
			expectStatus(http.StatusOK),
			expectMsg(v1.MsgDeleted)); err != nil {
			r.Fail(fmt.Errorf("first delete: %w", err))
			return nil
		}
		deleted = true
		resp, err = r.common.client.Delete(st.cred, id)
		if err != nil {
			return err
		}
		if err := expect(resp,
			expectStatus(http.StatusBadRequest),
			expectMsg(v1.MsgUnableToDelete)); err != nil {
			r.Fail(fmt.Errorf("second delete: %w", err))
			return nil
		}
		r.Pass()
		return nil
	})
}

func (r *Runner) TestListAfterCreate(st *state) error {
	return r.Child("list after create", func(r *Runner) error {
		id, err := r.createFresh(st)
		if err != nil {
			r.Fail(err)
			return nil
		}
		defer r.cleanup(st, id)
		resp, err := r.common.client.List(st.cred)
		if err != nil {
			return err
		}
		r.check(resp,
			expectStatus(http.StatusOK),
			expectNonEmptyArray())
		return nil
	})
}

func (r *Runner) TestInvalidCreate(st *state) error {
	return r.Child("invalid create", func(r *Runner) error {
		resp, err := r.common.client.Create(st.cred, emptyStory)
		if err != nil {
			return err
		}
		r.check(resp, expectStatus(http.StatusBadRequest))
		return nil
	})
}
