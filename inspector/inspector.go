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

// Package inspector answers three questions about a type: which of its
// fields carry a marker, which method names it declares or takes on from
// the interfaces it directly implements, and how to build an instance from
// a list of arguments.
//
// The package-level functions work on an already assembled
// descriptor.Type. Inspector binds them to an apis.Resolver so callers can
// start from a reflect.Type.
//
// Construction deliberately ignores the Access flag of initializers: once
// an initializer's parameter profile matches, it is invoked through
// descriptor.Initializer.ForceCall even if restricted. Nothing else in the
// module bypasses Access.
package inspector

import (
	"fmt"
	"reflect"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/descriptor"
)

// MarkedFields returns the names of desc's fields carrying m, in field
// order and without duplicates.
func MarkedFields(desc *descriptor.Type, m descriptor.Marker) []string {
	out := make([]string, 0)
	if desc == nil {
		return out
	}
	seen := make(map[string]bool)
	for _, f := range desc.Fields {
		if seen[f.Name] || !f.HasMarker(m) {
			continue
		}
		seen[f.Name] = true
		out = append(out, f.Name)
	}
	return out
}

// MethodNames returns the names of desc's own methods followed by those of
// each directly implemented interface, in interface order. Each name
// appears once; overloads and repeats collapse to the first occurrence.
func MethodNames(desc *descriptor.Type) []string {
	out := make([]string, 0)
	if desc == nil {
		return out
	}
	seen := make(map[string]bool)
	add := func(ms []descriptor.Method) {
		for _, m := range ms {
			if !seen[m.Name] {
				seen[m.Name] = true
				out = append(out, m.Name)
			}
		}
	}
	add(desc.Methods)
	for _, it := range desc.Interfaces {
		add(it.Methods)
	}
	return out
}

// Construct invokes the first of desc's initializers that accepts args,
// in declaration order, and returns a pointer to the new instance.
func Construct(desc *descriptor.Type, args ...any) (reflect.Value, error) {
	for _, ini := range desc.Initializers {
		if !ini.Accepts(args) {
			continue
		}
		p, err := ini.ForceCall(args...)
		if err != nil {
			return reflect.Value{}, newConstructorError(desc.Go, args, ErrInvocation, err)
		}
		return p, nil
	}
	return reflect.Value{}, newConstructorError(desc.Go, args, ErrNoMatchingConstructor, nil)
}

// Inspector resolves types to descriptors and queries them.
// It holds no per-call state and is safe for concurrent use.
type Inspector struct {
	res apis.Resolver
	cfg apis.Config
}

// New returns an Inspector describing types through res under cfg.
func New(res apis.Resolver, cfg apis.Config) *Inspector {
	return &Inspector{res: res, cfg: cfg}
}

// Describe returns a freshly assembled descriptor of t.
func (in *Inspector) Describe(t reflect.Type) (*descriptor.Type, error) {
	return in.res.Describe(t, in.cfg)
}

// MarkedFields lists the fields declared directly on t that carry m.
// A type that cannot be described has no marked fields.
func (in *Inspector) MarkedFields(t reflect.Type, m descriptor.Marker) []string {
	desc, err := in.Describe(t)
	if err != nil {
		return make([]string, 0)
	}
	return MarkedFields(desc, m)
}

// MethodNames lists the methods declared on t and on the interfaces t
// directly implements. A type that cannot be described has no methods.
func (in *Inspector) MethodNames(t reflect.Type) []string {
	desc, err := in.Describe(t)
	if err != nil {
		return make([]string, 0)
	}
	return MethodNames(desc)
}

// NewInstance creates a new instance of t from args. The result has t's
// shape: for t = T it holds a T, for t = *T a *T.
//
// Failures are *ConstructorError of kind ErrNoMatchingConstructor or
// ErrInvocation, or a wrapped describe error when t cannot be described.
func (in *Inspector) NewInstance(t reflect.Type, args ...any) (any, error) {
	desc, err := in.Describe(t)
	if err != nil {
		return nil, fmt.Errorf("inspect(inspector): describe %v: %w", t, err)
	}
	p, err := Construct(desc, args...)
	if err != nil {
		return nil, err
	}
	return shape(p, t).Interface(), nil
}

// shape converts p, a pointer to the base of t, into a value of type t.
// t is the base itself or an unnamed pointer chain over it.
func shape(p reflect.Value, t reflect.Type) reflect.Value {
	if t == p.Type().Elem() {
		return p.Elem()
	}
	v := p
	for v.Type() != t {
		w := reflect.New(v.Type())
		w.Elem().Set(v)
		v = w
	}
	return v
}
