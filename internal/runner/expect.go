package runner

import (
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/storyspoiler/api-tests/schema"
	"github.com/storyspoiler/api-tests/test/pkg/story"
)

const truncateBody = 512

// expectFn checks one property of a response.
type expectFn func(*story.Response) error

// expect runs every check and joins the failures.
func expect(resp *story.Response, fns ...expectFn) error {
	errs := []error{}
	for _, fn := range fns {
		if err := fn(resp); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

func expectStatus(statusCodes ...int) expectFn {
	return func(resp *story.Response) error {
		for _, c := range statusCodes {
			if resp.StatusCode == c {
				return nil
			}
		}
		return fmt.Errorf("expected status %v, received %d: %s", statusCodes, resp.StatusCode, truncate(resp.Body))
	}
}

func expectMsg(msg string) expectFn {
	return func(resp *story.Response) error {
		env, err := resp.Envelope()
		if err != nil {
			return err
		}
		if env.Message != msg {
			return fmt.Errorf("expected msg %q, received %q", msg, env.Message)
		}
		return nil
	}
}

// expectStoryID stores a non-empty storyId in id.
func expectStoryID(id *string) expectFn {
	return func(resp *story.Response) error {
		v, err := resp.Field("storyId")
		if err != nil {
			return err
		}
		if v == "" {
			return fmt.Errorf("storyId is empty")
		}
		*id = v
		return nil
	}
}

func expectNonEmptyArray() expectFn {
	return func(resp *story.Response) error {
		n, err := resp.ArrayLen()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("expected a non-empty list of stories")
		}
		return nil
	}
}

func expectSchema(s *gojsonschema.Schema) expectFn {
	return func(resp *story.Response) error {
		if len(resp.Body) == 0 {
			return story.ErrEmptyBody
		}
		if err := schema.Validate(s, resp.Body); err != nil {
			return fmt.Errorf("response does not match schema: %w", err)
		}
		return nil
	}
}

func truncate(b []byte) string {
	if len(b) > truncateBody {
		return string(b[:truncateBody]) + "..."
	}
	return string(b)
}
