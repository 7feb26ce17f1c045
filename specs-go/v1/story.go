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

package v1

// StoryRequest is the body sent to the create and edit endpoints.
type StoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// IsEmpty reports whether none of the required fields are set.
func (s StoryRequest) IsEmpty() bool {
	return s.Title == "" && s.Description == "" && s.URL == ""
}

// AuthRequest is the body sent to the authentication endpoint.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by the authentication endpoint.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}
