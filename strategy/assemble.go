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
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/descriptor"
	uref "dirpx.dev/inspect/utils/reflect"
)

// ErrDeclarationMismatch is returned when a declaration describes a
// different type than the one being resolved.
var ErrDeclarationMismatch = errors.New("inspect(strategy): declaration type mismatch")

// assemble builds a fresh descriptor of base type t from reflection and,
// when d is non-nil, the facts d declares.
func assemble(t reflect.Type, d *descriptor.Declaration, cfg apis.Config) (*descriptor.Type, error) {
	if d != nil {
		if err := d.Err(); err != nil {
			return nil, err
		}
		if d.Type() != t {
			return nil, fmt.Errorf("%w: declared %v, resolving %v", ErrDeclarationMismatch, d.Type(), t)
		}
	}

	desc := &descriptor.Type{
		Go:      t,
		Fields:  uref.Fields(t, cfg.MarkerTagKey, cfg.ExportedFieldsOnly),
		Methods: uref.Methods(t),
	}

	if d != nil {
		for i := range desc.Fields {
			desc.Fields[i].Markers = append(desc.Fields[i].Markers, d.MarkersOf(desc.Fields[i].Name)...)
		}
		for _, name := range d.ExtraMethods() {
			desc.Methods = append(desc.Methods, descriptor.Method{Name: name})
		}
		for _, it := range d.Capabilities() {
			desc.Interfaces = append(desc.Interfaces, descriptor.Interface{
				Type:    it,
				Methods: uref.InterfaceMethods(it),
			})
		}
		desc.Initializers = d.Initializers()
	}

	// Interfaces cannot be instantiated.
	if len(desc.Initializers) == 0 && cfg.ImplicitInitializer && t.Kind() != reflect.Interface {
		desc.Initializers = []descriptor.Initializer{descriptor.ImplicitInitializer(t)}
	}
	return desc, nil
}
