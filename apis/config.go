/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Config carries read-only knobs that influence how descriptors are assembled.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MarkerTagKey is the struct tag key whose comma-separated value lists
	// the markers of a field, e.g. `mark:"id,audit"`.
	MarkerTagKey string `yaml:"marker_tag_key"`

	// ExportedFieldsOnly hides unexported fields from descriptors.
	// By default every directly declared field is reported.
	ExportedFieldsOnly bool `yaml:"exported_fields_only"`

	// ImplicitInitializer gives types that declare no constructor a public
	// zero-argument initializer producing the zero value.
	ImplicitInitializer bool `yaml:"implicit_initializer"`

	// MaxUnwrap limits pointer unwrapping when reducing a type to its base.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int `yaml:"max_unwrap"`
}
