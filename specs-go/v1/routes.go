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

// Route templates relative to the service root. The <reference> placeholder
// is filled with a story identifier.
const (
	RouteAuthenticate = "/api/User/Authentication"
	RouteStoryCreate  = "/api/Story/Create"
	RouteStoryEdit    = "/api/Story/Edit/<reference>"
	RouteStoryAll     = "/api/Story/All"
	RouteStoryDelete  = "/api/Story/Delete/<reference>"
)
