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
	"errors"
	"fmt"
)

var (
	// ErrNilType is returned when a declaration is started for a nil type.
	ErrNilType = errors.New("inspect(descriptor): nil reflect.Type provided")
	// ErrUnknownField is returned when a marker targets a field not declared directly on the type.
	ErrUnknownField = errors.New("inspect(descriptor): unknown field")
	// ErrNotInterface is returned when Implements receives a non-interface type.
	ErrNotInterface = errors.New("inspect(descriptor): not an interface type")
	// ErrNotImplemented is returned when the declared type does not satisfy a declared interface.
	ErrNotImplemented = errors.New("inspect(descriptor): interface not implemented")
	// ErrBadConstructor is returned when a constructor func has an unsupported shape.
	ErrBadConstructor = errors.New("inspect(descriptor): invalid constructor")
	// ErrEmptyMethod is returned when Methods receives an empty name.
	ErrEmptyMethod = errors.New("inspect(descriptor): empty method name")

	// ErrRestricted is returned by Initializer.Call for a restricted initializer.
	ErrRestricted = errors.New("inspect(descriptor): initializer is restricted")
	// ErrArgumentMismatch is returned when arguments do not fit the parameter profile.
	ErrArgumentMismatch = errors.New("inspect(descriptor): arguments do not match parameters")
	// ErrNilInstance is returned when a constructor yields a nil pointer without an error.
	ErrNilInstance = errors.New("inspect(descriptor): constructor returned nil instance")
)

// PanicError carries a value recovered from a panicking constructor.
type PanicError struct {
	Value any
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("inspect(descriptor): constructor panicked: %v", e.Value)
}

// Unwrap returns the recovered value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
