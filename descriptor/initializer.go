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
)

var errorType = reflect.TypeFor[error]()

// Initializer is a construction routine with a fixed parameter profile.
//
// An Initializer is either backed by a declared constructor func, or it is
// the implicit zero-value initializer of a type that declares none.
type Initializer struct {
	// Params are the formal parameter types, in order. For a variadic
	// constructor the last entry is the slice type.
	Params []reflect.Type
	// Access is the accessibility flag.
	Access Access

	// target is the base type the initializer produces.
	target reflect.Type
	// fn is the backing constructor; invalid for the implicit initializer.
	fn reflect.Value
}

// ImplicitInitializer returns the public zero-argument initializer that
// produces a zero value of t.
func ImplicitInitializer(t reflect.Type) Initializer {
	return Initializer{Params: nil, Access: Public, target: t}
}

// newInitializer validates fn as a constructor of target.
// Accepted shapes: func(...) T, func(...) *T, func(...) (T, error), func(...) (*T, error).
func newInitializer(target reflect.Type, fn any, access Access) (Initializer, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return Initializer{}, fmt.Errorf("%w: %T is not a func", ErrBadConstructor, fn)
	}
	ft := v.Type()
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return Initializer{}, fmt.Errorf("%w: %s: second result must be error", ErrBadConstructor, ft)
		}
	default:
		return Initializer{}, fmt.Errorf("%w: %s: want 1 or 2 results", ErrBadConstructor, ft)
	}
	if out := ft.Out(0); out != target && out != reflect.PointerTo(target) {
		return Initializer{}, fmt.Errorf("%w: %s does not produce %s", ErrBadConstructor, ft, target)
	}

	params := make([]reflect.Type, ft.NumIn())
	for k := range params {
		params[k] = ft.In(k)
	}
	return Initializer{Params: params, Access: access, target: target, fn: v}, nil
}

// Implicit reports whether i is the implicit zero-value initializer.
func (i Initializer) Implicit() bool {
	return !i.fn.IsValid()
}

// Arity returns the number of formal parameters.
func (i Initializer) Arity() int {
	return len(i.Params)
}

// Accepts reports whether args match the parameter profile: same count, and
// each argument's dynamic type is assignable to the parameter at its position.
//
// An untyped nil argument never matches, whatever the parameter type.
// Typed nils (for example (*T)(nil)) carry a dynamic type and are checked
// like any other value.
func (i Initializer) Accepts(args []any) bool {
	if len(args) != len(i.Params) {
		return false
	}
	for k, a := range args {
		if a == nil {
			return false
		}
		if !reflect.TypeOf(a).AssignableTo(i.Params[k]) {
			return false
		}
	}
	return true
}

// Call invokes a public initializer and returns a pointer to the new instance.
// Restricted initializers yield ErrRestricted.
func (i Initializer) Call(args ...any) (reflect.Value, error) {
	if i.Access != Public {
		return reflect.Value{}, ErrRestricted
	}
	return i.ForceCall(args...)
}

// ForceCall invokes i regardless of its Access flag and returns a pointer to
// the new instance. It is the only way to reach a Restricted initializer.
//
// A panic inside the constructor is returned as *PanicError. An error result
// is returned as is. A nil pointer or nil interface result yields
// ErrNilInstance.
func (i Initializer) ForceCall(args ...any) (out reflect.Value, err error) {
	if !i.Accepts(args) {
		return reflect.Value{}, ErrArgumentMismatch
	}
	if i.Implicit() {
		return reflect.New(i.target), nil
	}

	in := make([]reflect.Value, len(args))
	for k, a := range args {
		in[k] = reflect.ValueOf(a)
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = reflect.Value{}, &PanicError{Value: r}
		}
	}()

	var res []reflect.Value
	if i.fn.Type().IsVariadic() {
		res = i.fn.CallSlice(in)
	} else {
		res = i.fn.Call(in)
	}
	if len(res) == 2 && !res[1].IsNil() {
		return reflect.Value{}, res[1].Interface().(error)
	}

	v := res[0]
	if v.Kind() == reflect.Interface && v.IsNil() {
		return reflect.Value{}, ErrNilInstance
	}
	if v.Type() == i.target {
		p := reflect.New(i.target)
		p.Elem().Set(v)
		return p, nil
	}
	if v.IsNil() {
		return reflect.Value{}, ErrNilInstance
	}
	return v, nil
}

// String renders the parameter profile, e.g. "restricted(string, int)".
func (i Initializer) String() string {
	s := i.Access.String() + "("
	for k, p := range i.Params {
		if k > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ")"
}
