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

// Envelope is the JSON body returned by the story endpoints.
type Envelope struct {
	// Message is a human readable outcome, e.g. "Successfully created!".
	Message string `json:"msg,omitempty"`

	// StoryID is only set by the create endpoint.
	StoryID string `json:"storyId,omitempty"`
}

// HasStoryID reports whether the server assigned an identifier.
func (e *Envelope) HasStoryID() bool {
	return e != nil && e.StoryID != ""
}

// Messages returned by the service for each outcome.
const (
	MsgCreated        = "Successfully created!"
	MsgEdited         = "Successfully edited"
	MsgDeleted        = "Deleted successfully!"
	MsgNoSpoilers     = "No spoilers..."
	MsgUnableToDelete = "Unable to delete this story spoiler!"
)
