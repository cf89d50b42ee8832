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
	"dirpx.dev/inspect/apis"
)

const (
	// DefaultMarkerTagKey represents the default for MarkerTagKey.
	DefaultMarkerTagKey = "mark"
	// DefaultExportedFieldsOnly represents the default for ExportedFieldsOnly.
	// When false, unexported fields are reported too.
	DefaultExportedFieldsOnly = false
	// DefaultImplicitInitializer represents the default for ImplicitInitializer.
	// When true, types without declared constructors can still be created.
	DefaultImplicitInitializer = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap and MarkerTagKey are valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.MarkerTagKey == "" {
		cfg.MarkerTagKey = DefaultMarkerTagKey
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MarkerTagKey:        DefaultMarkerTagKey,
		ExportedFieldsOnly:  DefaultExportedFieldsOnly,
		ImplicitInitializer: DefaultImplicitInitializer,
		MaxUnwrap:           DefaultMaxUnwrap,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMarkerTagKey sets the MarkerTagKey option.
// An empty key resets to the default.
func WithMarkerTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			c.MarkerTagKey = DefaultMarkerTagKey
			return
		}
		c.MarkerTagKey = key
	}
}

// WithExportedFieldsOnly sets the ExportedFieldsOnly option.
func WithExportedFieldsOnly(only bool) Option {
	return func(c *apis.Config) {
		c.ExportedFieldsOnly = only
	}
}

// WithImplicitInitializer sets the ImplicitInitializer option.
func WithImplicitInitializer(enabled bool) Option {
	return func(c *apis.Config) {
		c.ImplicitInitializer = enabled
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}
