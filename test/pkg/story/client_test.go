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
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
	"github.com/storyspoiler/api-tests/test/pkg/auth"
)

const testToken = "eyJhbGciOiJIUzI1NiJ9.e30.sig"

var bearer = auth.NewCredential(testToken)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newStub serves only the routes registered by the test.
func newStub(t *testing.T, routes func(r chi.Router), opts ...Option) *Client {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestClient_Authenticate(t *testing.T) {
	var got v1.AuthRequest
	c := newStub(t, func(r chi.Router) {
		r.Post("/api/User/Authentication", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Empty(t, r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(w, http.StatusOK, v1.AuthResponse{AccessToken: testToken})
		})
	})

	cred, err := c.Authenticate("Tester2", "tester2")
	require.NoError(t, err)
	assert.Equal(t, testToken, cred.Token())
	assert.Equal(t, v1.AuthRequest{Username: "Tester2", Password: "tester2"}, got)
}

func TestClient_Authenticate_EmptyBody(t *testing.T) {
	c := newStub(t, func(r chi.Router) {
		r.Post("/api/User/Authentication", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	_, err := c.Authenticate("Tester2", "tester2")
	require.ErrorIs(t, err, auth.ErrEmptyBody)
}

func TestClient_Authenticate_MissingToken(t *testing.T) {
	c := newStub(t, func(r chi.Router) {
		r.Post("/api/User/Authentication", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"msg": "Invalid username or password"})
		})
	})

	_, err := c.Authenticate("Tester2", "wrong")
	require.ErrorIs(t, err, auth.ErrMissingToken)
	assert.Contains(t, err.Error(), "status 400")
}

func TestClient_BearerOnStoryCalls(t *testing.T) {
	c := newStub(t, func(r chi.Router) {
		r.Get("/api/Story/All", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
			assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
			writeJSON(w, http.StatusOK, []map[string]string{{"title": "a"}, {"title": "b"}})
		})
	})

	resp, err := c.List(bearer)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	n, err := resp.ArrayLen()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestClient_Create(t *testing.T) {
	var got v1.StoryRequest
	c := newStub(t, func(r chi.Router) {
		r.Post("/api/Story/Create", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(w, http.StatusCreated, v1.Envelope{Message: v1.MsgCreated, StoryID: "abc-123"})
		})
	})

	story := v1.StoryRequest{Title: "Test Story", Description: "This is a test story."}
	resp, err := c.Create(bearer, story)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, story, got)

	env, err := resp.Envelope()
	require.NoError(t, err)
	assert.Equal(t, v1.MsgCreated, env.Message)
	assert.Equal(t, "abc-123", env.StoryID)
	assert.True(t, env.HasStoryID())

	id, err := resp.Field("storyId")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
}

func TestClient_EditAndDeleteUseIdentifierInPath(t *testing.T) {
	var seen []string
	c := newStub(t, func(r chi.Router) {
		r.Put("/api/Story/Edit/{id}", func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, "edit "+chi.URLParam(r, "id"))
			writeJSON(w, http.StatusOK, v1.Envelope{Message: v1.MsgEdited})
		})
		r.Delete("/api/Story/Delete/{id}", func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, "delete "+chi.URLParam(r, "id"))
			writeJSON(w, http.StatusOK, v1.Envelope{Message: v1.MsgDeleted})
		})
	})

	resp, err := c.Edit(bearer, "abc-123", v1.StoryRequest{Title: "Updated Test Story"})
	require.NoError(t, err)
	env, err := resp.Envelope()
	require.NoError(t, err)
	assert.Equal(t, v1.MsgEdited, env.Message)

	resp, err = c.Delete(bearer, "abc-123")
	require.NoError(t, err)
	env, err = resp.Envelope()
	require.NoError(t, err)
	assert.Equal(t, v1.MsgDeleted, env.Message)

	assert.Equal(t, []string{"edit abc-123", "delete abc-123"}, seen)
}

func TestClient_EmptyIdentifier(t *testing.T) {
	c := newStub(t, func(r chi.Router) {})

	_, err := c.Edit(bearer, "", v1.StoryRequest{})
	require.ErrorIs(t, err, ErrNoStoryID)
	_, err = c.Delete(bearer, "")
	require.ErrorIs(t, err, ErrNoStoryID)
}

func TestClient_NotFoundStatusIsNotAnError(t *testing.T) {
	c := newStub(t, func(r chi.Router) {
		r.Put("/api/Story/Edit/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, v1.Envelope{Message: v1.MsgNoSpoilers})
		})
	})

	resp, err := c.Edit(bearer, "123", v1.StoryRequest{Title: "Updated Story"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env, err := resp.Envelope()
	require.NoError(t, err)
	assert.Equal(t, v1.MsgNoSpoilers, env.Message)
}

func TestClient_Debug(t *testing.T) {
	l := &captureLogger{}
	c := newStub(t, func(r chi.Router) {
		r.Get("/api/Story/All", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []any{})
		})
	}, WithDebug(true), WithLogger(l))

	_, err := c.List(bearer)
	require.NoError(t, err)
	assert.NotEmpty(t, l.lines())
}

func TestClient_NoCredentialSendsNoAuthorization(t *testing.T) {
	c := newStub(t, func(r chi.Router) {
		r.Get("/api/Story/All", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, []any{})
		})
	})

	resp, err := c.List(auth.Credential{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// A 401 is returned as is: no token exchange with the challenged realm and no
// second request.
func TestClient_UnauthorizedIsReturnedOnce(t *testing.T) {
	tt := []struct {
		name      string
		challenge func(srvURL string) string
	}{
		{"bearer without realm", func(string) string { return "Bearer" }},
		{"bearer invalid token", func(string) string { return `Bearer error="invalid_token"` }},
		{"bearer with realm", func(u string) string { return fmt.Sprintf(`Bearer realm="%s/token",service="story"`, u) }},
		{"basic with realm", func(u string) string { return fmt.Sprintf(`Basic realm="%s"`, u) }},
	}
	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var creates, tokens atomic.Int32
			var srvURL string
			r := chi.NewRouter()
			r.Post("/api/Story/Create", func(w http.ResponseWriter, r *http.Request) {
				creates.Add(1)
				w.Header().Set("WWW-Authenticate", tc.challenge(srvURL))
				w.WriteHeader(http.StatusUnauthorized)
			})
			r.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
				tokens.Add(1)
				writeJSON(w, http.StatusOK, map[string]string{"token": "foreign"})
			})
			srv := httptest.NewServer(r)
			t.Cleanup(srv.Close)
			srvURL = srv.URL

			c, err := NewClient(srv.URL)
			require.NoError(t, err)
			t.Cleanup(c.Close)

			resp, err := c.Create(bearer, v1.StoryRequest{Title: "Test Story", Description: "This is a test story."})
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, int32(1), creates.Load())
			assert.Equal(t, int32(0), tokens.Load())
		})
	}
}

func TestClient_AuthenticateUnauthorized(t *testing.T) {
	var calls atomic.Int32
	c := newStub(t, func(r chi.Router) {
		r.Post("/api/User/Authentication", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.WriteHeader(http.StatusUnauthorized)
		})
	})

	_, err := c.Authenticate("Tester2", "wrong")
	require.ErrorIs(t, err, auth.ErrEmptyBody)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CloseNil(t *testing.T) {
	var c *Client
	assert.NotPanics(t, c.Close)
}

func TestResponse_EmptyBody(t *testing.T) {
	r := &Response{StatusCode: http.StatusBadRequest}

	_, err := r.Envelope()
	require.ErrorIs(t, err, ErrEmptyBody)
	_, err = r.Field("msg")
	require.ErrorIs(t, err, ErrEmptyBody)
	_, err = r.ArrayLen()
	require.ErrorIs(t, err, ErrEmptyBody)
}

func TestResponse_Malformed(t *testing.T) {
	r := &Response{Body: []byte(`{"msg":`)}

	_, err := r.Envelope()
	require.Error(t, err)
	_, err = r.Field("msg")
	require.Error(t, err)
	_, err = r.ArrayLen()
	require.Error(t, err)
}

func TestResponse_ArrayLenOnObject(t *testing.T) {
	r := &Response{Body: []byte(`{"msg":"No spoilers..."}`)}

	_, err := r.ArrayLen()
	require.Error(t, err)
	_, err = r.Field("storyId")
	require.Error(t, err)
}

type captureLogger struct {
	mu  sync.Mutex
	out []string
}

func (l *captureLogger) add(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = append(l.out, fmt.Sprintf(format, v...))
}

func (l *captureLogger) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.out...)
}

func (l *captureLogger) Errorf(format string, v ...interface{}) { l.add(format, v...) }
func (l *captureLogger) Warnf(format string, v ...interface{})  { l.add(format, v...) }
func (l *captureLogger) Debugf(format string, v ...interface{}) { l.add(format, v...) }
