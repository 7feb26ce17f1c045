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

// Package story is a thin client for the Story Spoiler endpoints used by the
// end-to-end tests. Every call is one synchronous request; nothing is retried.
package story

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/bloodorangeio/reggie"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
	"github.com/storyspoiler/api-tests/test/pkg/auth"
)

const defaultUserAgent = "story-spoiler-api-tests"

// ErrNoStoryID is returned when an identifier is required but empty.
var ErrNoStoryID = errors.New("story: empty story identifier")

// Logger receives the HTTP debug output of the underlying resty client.
type Logger interface {
	Errorf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

type options struct {
	debug     bool
	logger    Logger
	userAgent string
}

// Option configures a Client.
type Option func(*options)

// WithDebug enables request and response dumps on the logger.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// Client talks to one Story Spoiler deployment. It holds no credential;
// each story call is given the bearer to send.
type Client struct {
	rc *reggie.Client
}

// NewClient returns a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	o := options{userAgent: defaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}
	rc, err := reggie.NewClient(baseURL,
		reggie.WithDebug(o.debug),
		reggie.WithUserAgent(o.userAgent))
	if err != nil {
		return nil, fmt.Errorf("story: creating client for %s: %w", baseURL, err)
	}
	if o.logger != nil {
		rc.SetLogger(o.logger)
	}
	return &Client{rc: rc}, nil
}

// Authenticate logs in and returns the bearer for later calls.
func (c *Client) Authenticate(username, password string) (auth.Credential, error) {
	body, err := json.Marshal(v1.AuthRequest{Username: username, Password: password})
	if err != nil {
		return auth.Credential{}, err
	}
	req := c.rc.NewRequest(reggie.POST, v1.RouteAuthenticate).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	resp, err := execute(req)
	if err != nil {
		return auth.Credential{}, fmt.Errorf("authenticate: %w", err)
	}
	cred, err := auth.ParseToken(resp.Body())
	if err != nil {
		return auth.Credential{}, fmt.Errorf("authenticate as %s (status %d): %w", username, resp.StatusCode(), err)
	}
	return cred, nil
}

// Create posts a new story.
func (c *Client) Create(cred auth.Credential, s v1.StoryRequest) (*Response, error) {
	req := c.rc.NewRequest(reggie.POST, v1.RouteStoryCreate)
	return send(req, cred, &s)
}

// Edit replaces the fields of the story with the given identifier.
func (c *Client) Edit(cred auth.Credential, id string, s v1.StoryRequest) (*Response, error) {
	if id == "" {
		return nil, ErrNoStoryID
	}
	req := c.rc.NewRequest(reggie.PUT, v1.RouteStoryEdit, reggie.WithReference(url.PathEscape(id)))
	return send(req, cred, &s)
}

// List returns every story.
func (c *Client) List(cred auth.Credential) (*Response, error) {
	req := c.rc.NewRequest(reggie.GET, v1.RouteStoryAll)
	return send(req, cred, nil)
}

// Delete removes the story with the given identifier.
func (c *Client) Delete(cred auth.Credential, id string) (*Response, error) {
	if id == "" {
		return nil, ErrNoStoryID
	}
	req := c.rc.NewRequest(reggie.DELETE, v1.RouteStoryDelete, reggie.WithReference(url.PathEscape(id)))
	return send(req, cred, nil)
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	if c == nil || c.rc == nil {
		return
	}
	c.rc.GetClient().CloseIdleConnections()
}

func send(req *reggie.Request, cred auth.Credential, s *v1.StoryRequest) (*Response, error) {
	if !cred.IsZero() {
		req = req.SetHeader("Authorization", cred.Bearer())
	}
	if s != nil {
		body, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		req = req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := execute(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	return newResponse(resp), nil
}

// execute sends req exactly once. reggie's Client.Do answers a 401 with a
// registry token exchange and a second request; a 401 here is a result.
func execute(req *reggie.Request) (*reggie.Response, error) {
	return req.Execute(req.Method, req.URL)
}
