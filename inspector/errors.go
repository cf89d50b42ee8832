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

package inspector

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNoMatchingConstructor is the kind of a ConstructorError raised when
	// no initializer accepts the arguments.
	ErrNoMatchingConstructor = errors.New("inspect(inspector): no matching constructor")
	// ErrInvocation is the kind of a ConstructorError raised when the matched
	// initializer failed or could not be invoked.
	ErrInvocation = errors.New("inspect(inspector): constructor invocation failed")
)

// ConstructorError reports a failed instance creation.
// errors.Is matches both Kind and Cause.
type ConstructorError struct {
	// Type is the base type that was to be created.
	Type reflect.Type
	// Args are the dynamic argument types; nil marks an untyped nil argument.
	Args []reflect.Type
	// Kind is ErrNoMatchingConstructor or ErrInvocation.
	Kind error
	// Cause is the underlying failure for ErrInvocation.
	Cause error
}

// Error implements error.
func (e *ConstructorError) Error() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		if a == nil {
			args[i] = "nil"
			continue
		}
		args[i] = a.String()
	}
	msg := fmt.Sprintf("%v: %v(%s)", e.Kind, e.Type, strings.Join(args, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes Kind and Cause to errors.Is and errors.As.
func (e *ConstructorError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newConstructorError(t reflect.Type, args []any, kind, cause error) *ConstructorError {
	types := make([]reflect.Type, len(args))
	for i, a := range args {
		types[i] = reflect.TypeOf(a)
	}
	return &ConstructorError{Type: t, Args: types, Kind: kind, Cause: cause}
}
