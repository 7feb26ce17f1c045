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

package schema

import (
	"embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

var schemaFS = http.FS(schemaFiles)

func loadSchema(file string) *gojsonschema.Schema {
	path := fmt.Sprintf("file:///%s", file)
	loader := gojsonschema.NewReferenceLoaderFileSystem(path, schemaFS)
	schema, _ := gojsonschema.NewSchema(loader)
	return schema
}

// EnvelopeSchema provides a gojsonschema.Schema that can be used to validate
// a message envelope returned by the edit and delete endpoints.
func EnvelopeSchema() *gojsonschema.Schema {
	return loadSchema("envelope.schema.json")
}

// StoryCreatedSchema provides a gojsonschema.Schema that can be used to
// validate the envelope returned by a successful create.
func StoryCreatedSchema() *gojsonschema.Schema {
	return loadSchema("story-created.schema.json")
}

// StoryListSchema provides a gojsonschema.Schema that can be used to validate
// the list of stories.
func StoryListSchema() *gojsonschema.Schema {
	return loadSchema("story-list.schema.json")
}

// Validate checks body against s and returns every violation joined into a
// single error.
func Validate(s *gojsonschema.Schema, body []byte) error {
	if s == nil {
		return errors.New("schema: not loaded")
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	errs := make([]error, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		errs = append(errs, errors.New(re.String()))
	}
	return errors.Join(errs...)
}
