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

// NewRegistryStrategy creates an apis.Strategy backed by an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults the declaration side-table.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryDescribe looks up t in the registry.
func (s *registryStrategy) TryDescribe(t reflect.Type, cfg apis.Config) (*descriptor.Type, bool, error) {
	if t == nil || s.reg == nil {
		return nil, false, nil
	}
	d, ok := s.reg.Lookup(t)
	if !ok {
		return nil, false, nil
	}
	desc, err := assemble(t, d, cfg)
	return desc, true, err
}
