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

package strategy

import (
	"reflect"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/descriptor"
)

// NewReflectStrategy creates an apis.Strategy that describes types from
// reflection alone.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. It reports fields with their
// tag markers and the exported methods declared on the type. With nothing
// declared there are no interfaces, and the only initializer is the
// implicit one (when enabled).
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// TryDescribe describes t from reflection.
func (reflectStrategy) TryDescribe(t reflect.Type, cfg apis.Config) (*descriptor.Type, bool, error) {
	if t == nil {
		return nil, false, nil
	}
	desc, err := assemble(t, nil, cfg)
	return desc, true, err
}
