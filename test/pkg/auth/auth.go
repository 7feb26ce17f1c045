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

package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmptyBody is returned when the authentication endpoint answers
	// without a body.
	ErrEmptyBody = errors.New("auth: response content is null or empty")

	// ErrMissingToken is returned when the body has no usable accessToken.
	ErrMissingToken = errors.New("auth: response has no accessToken")
)

const tokenField = "accessToken"

var secretPattern = regexp.MustCompile("(?i)(\"?\\w*(authorization|token|password|state)\\w*\"?(:|=)\\s*)(\")?\\s*((bearer|basic)? )?[^\\s&\"]*(\")?")

// Credential is the bearer token acquired once per run.
type Credential struct {
	token string
}

// NewCredential wraps an already known token.
func NewCredential(token string) Credential {
	return Credential{token: token}
}

// Token returns the raw token.
func (c Credential) Token() string {
	return c.token
}

// IsZero reports whether no token was acquired.
func (c Credential) IsZero() bool {
	return c.token == ""
}

// Bearer renders the value of the Authorization header.
func (c Credential) Bearer() string {
	return "Bearer " + c.token
}

// String never prints the token.
func (c Credential) String() string {
	if c.IsZero() {
		return "<none>"
	}
	return "*****"
}

// ParseToken extracts the accessToken field from an authentication body.
// An empty body, a body that is not JSON and a missing or empty token are
// all errors.
func ParseToken(body []byte) (Credential, error) {
	if len(body) == 0 {
		return Credential{}, ErrEmptyBody
	}
	if !gjson.ValidBytes(body) {
		return Credential{}, fmt.Errorf("auth: response is not valid JSON: %.64q", body)
	}
	tok := gjson.GetBytes(body, tokenField)
	if !tok.Exists() || tok.Type != gjson.String || tok.String() == "" {
		return Credential{}, ErrMissingToken
	}
	return Credential{token: tok.String()}, nil
}

// Redact masks authorization headers, tokens and passwords in s.
func Redact(s string) string {
	return secretPattern.ReplaceAllString(s, "$1$4$5*****$7")
}
