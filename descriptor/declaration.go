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

package descriptor

import (
	"fmt"
	"reflect"
	"slices"
)

// Declaration records the facts about a type that reflection cannot supply:
// side-table field markers, unexported method names, directly implemented
// interfaces and constructors.
//
// A Declaration is built with chained calls, typically from an init func:
//
//	descriptor.Declare[Villager]().
//		Constructor(NewVillager).
//		RestrictedConstructor(newVillager).
//		Implements(reflect.TypeFor[Greeter]())
//
// The first problem encountered is kept and reported by Err; later calls
// become no-ops. Once registered, a Declaration must not be modified.
type Declaration struct {
	t       reflect.Type
	marks   map[string][]Marker
	methods []string
	ifaces  []reflect.Type
	inits   []Initializer
	err     error
}

// Declare starts a declaration for T. Pointer types are reduced to their base.
func Declare[T any]() *Declaration {
	return DeclareType(reflect.TypeFor[T]())
}

// DeclareType starts a declaration for t. Unnamed pointer types are reduced
// to their base.
func DeclareType(t reflect.Type) *Declaration {
	d := &Declaration{marks: make(map[string][]Marker)}
	if t == nil {
		d.err = ErrNilType
		return d
	}
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	d.t = t
	return d
}

// Mark attaches markers to a field declared directly on the type.
func (d *Declaration) Mark(field string, markers ...Marker) *Declaration {
	if d.err != nil {
		return d
	}
	if !declaresField(d.t, field) {
		d.err = fmt.Errorf("%w: %s.%s", ErrUnknownField, d.t, field)
		return d
	}
	d.marks[field] = append(d.marks[field], markers...)
	return d
}

// Implements declares interfaces the type directly implements, in order.
// Either the type or a pointer to it must satisfy each interface.
func (d *Declaration) Implements(ifaces ...reflect.Type) *Declaration {
	for _, it := range ifaces {
		if d.err != nil {
			return d
		}
		switch {
		case it == nil || it.Kind() != reflect.Interface:
			d.err = fmt.Errorf("%w: %v", ErrNotInterface, it)
		case !d.t.Implements(it) && !reflect.PointerTo(d.t).Implements(it):
			d.err = fmt.Errorf("%w: %s does not implement %s", ErrNotImplemented, d.t, it)
		default:
			d.ifaces = append(d.ifaces, it)
		}
	}
	return d
}

// Method declares method names that reflection cannot observe, such as
// unexported methods.
func (d *Declaration) Method(names ...string) *Declaration {
	for _, n := range names {
		if d.err != nil {
			return d
		}
		if n == "" {
			d.err = ErrEmptyMethod
			return d
		}
		d.methods = append(d.methods, n)
	}
	return d
}

// Constructor declares a public initializer backed by fn.
func (d *Declaration) Constructor(fn any) *Declaration {
	return d.constructor(fn, Public)
}

// RestrictedConstructor declares a restricted initializer backed by fn.
// Restricted initializers are still selected by the inspector.
func (d *Declaration) RestrictedConstructor(fn any) *Declaration {
	return d.constructor(fn, Restricted)
}

func (d *Declaration) constructor(fn any, access Access) *Declaration {
	if d.err != nil {
		return d
	}
	ini, err := newInitializer(d.t, fn, access)
	if err != nil {
		d.err = err
		return d
	}
	d.inits = append(d.inits, ini)
	return d
}

// Type returns the declared base type.
func (d *Declaration) Type() reflect.Type {
	return d.t
}

// Err returns the first problem recorded while declaring.
func (d *Declaration) Err() error {
	return d.err
}

// MarkersOf returns the side-table markers of field.
func (d *Declaration) MarkersOf(field string) []Marker {
	return slices.Clone(d.marks[field])
}

// ExtraMethods returns the explicitly declared method names.
func (d *Declaration) ExtraMethods() []string {
	return slices.Clone(d.methods)
}

// Capabilities returns the declared interfaces in declaration order.
func (d *Declaration) Capabilities() []reflect.Type {
	return slices.Clone(d.ifaces)
}

// Initializers returns the declared initializers in declaration order.
func (d *Declaration) Initializers() []Initializer {
	return slices.Clone(d.inits)
}

// declaresField reports whether t is a struct with a field named name
// declared directly on it (promoted fields do not count).
func declaresField(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Name == name {
			return true
		}
	}
	return false
}
