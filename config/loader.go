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

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/inspect/apis"
)

// file mirrors apis.Config with optional keys so absent values keep defaults.
type file struct {
	MarkerTagKey        *string `yaml:"marker_tag_key"`
	ExportedFieldsOnly  *bool   `yaml:"exported_fields_only"`
	ImplicitInitializer *bool   `yaml:"implicit_initializer"`
	MaxUnwrap           *int    `yaml:"max_unwrap"`
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("inspect(config): failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into an apis.Config.
// Keys that are absent keep their defaults; the result is passed through
// the same guards as NewConfig.
func Parse(data []byte) (apis.Config, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("inspect(config): failed to parse config YAML: %w", err)
	}

	var opts []Option
	if f.MarkerTagKey != nil {
		opts = append(opts, WithMarkerTagKey(*f.MarkerTagKey))
	}
	if f.ExportedFieldsOnly != nil {
		opts = append(opts, WithExportedFieldsOnly(*f.ExportedFieldsOnly))
	}
	if f.ImplicitInitializer != nil {
		opts = append(opts, WithImplicitInitializer(*f.ImplicitInitializer))
	}
	if f.MaxUnwrap != nil {
		opts = append(opts, WithMaxUnwrap(*f.MaxUnwrap))
	}
	return NewConfig(opts...), nil
}

// Marshal serializes cfg to YAML.
func Marshal(cfg apis.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
