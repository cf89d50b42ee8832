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

// NewDeclarerStrategy creates an apis.Strategy that uses apis.Declarer.
func NewDeclarerStrategy() apis.Strategy {
	return &declarerStrategy{}
}

// declarerStrategy is the self-describing fast path: if *t implements
// apis.Declarer, its InspectDeclaration() is used and the chain stops.
type declarerStrategy struct{}

// Ensure declarerStrategy implements apis.Strategy.
var _ apis.Strategy = (*declarerStrategy)(nil)

var declarerType = reflect.TypeFor[apis.Declarer]()

// TryDescribe asks a zero *t for its declaration.
// A nil declaration falls through to the next strategy.
func (*declarerStrategy) TryDescribe(t reflect.Type, cfg apis.Config) (*descriptor.Type, bool, error) {
	if t == nil || !reflect.PointerTo(t).Implements(declarerType) {
		return nil, false, nil
	}
	d := reflect.New(t).Interface().(apis.Declarer).InspectDeclaration()
	if d == nil {
		return nil, false, nil
	}
	desc, err := assemble(t, d, cfg)
	return desc, true, err
}
