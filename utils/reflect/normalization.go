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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectUnwrapLimit indicates that the type is still a pointer after
	// MaxUnwrap dereferences.
	ErrReflectUnwrapLimit = errors.New("reflect: pointer nesting exceeds MaxUnwrap")
)

// Normalize strips unnamed pointer levels from t and returns the base type
// that descriptors and declarations are keyed on.
//
// Unwrapping policy:
//   - unnamed ptr -> Elem()
//   - anything else (including named pointer types) is the base.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap; i++ {
		if t.Kind() != reflect.Pointer || t.Name() != "" {
			return t, nil
		}
		t = t.Elem()
	}

	// After reaching max depth, ensure we ended on a base type.
	if t.Kind() != reflect.Pointer || t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectUnwrapLimit
}
