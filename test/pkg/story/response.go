// Copyright 2025 The Story Spoiler API Tests Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package story

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bloodorangeio/reggie"
	"github.com/tidwall/gjson"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

// ErrEmptyBody is returned when a field is read from a response that has no
// content. It is a failure of the call, not of an assertion.
var ErrEmptyBody = errors.New("story: response content is null or empty")

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

func newResponse(resp *reggie.Response) *Response {
	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Duration:   resp.Time(),
	}
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}

// Envelope decodes the {msg, storyId} body.
func (r *Response) Envelope() (*v1.Envelope, error) {
	if len(r.Body) == 0 {
		return nil, ErrEmptyBody
	}
	env := &v1.Envelope{}
	if err := json.Unmarshal(r.Body, env); err != nil {
		return nil, fmt.Errorf("story: decoding envelope: %w", err)
	}
	return env, nil
}

// Field returns the string value at the gjson path.
func (r *Response) Field(path string) (string, error) {
	if len(r.Body) == 0 {
		return "", ErrEmptyBody
	}
	if !gjson.ValidBytes(r.Body) {
		return "", fmt.Errorf("story: response is not valid JSON")
	}
	res := gjson.GetBytes(r.Body, path)
	if !res.Exists() {
		return "", fmt.Errorf("story: field %q not found", path)
	}
	return res.String(), nil
}

// ArrayLen returns the number of elements of a JSON array body.
func (r *Response) ArrayLen() (int, error) {
	if len(r.Body) == 0 {
		return 0, ErrEmptyBody
	}
	if !gjson.ValidBytes(r.Body) {
		return 0, fmt.Errorf("story: response is not valid JSON")
	}
	res := gjson.ParseBytes(r.Body)
	if !res.IsArray() {
		return 0, fmt.Errorf("story: expected a JSON array, got %s", res.Type)
	}
	return len(res.Array()), nil
}
