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

package apis

import (
	"reflect"

	"dirpx.dev/inspect/descriptor"
)

// Registry is the declaration side-table: it maps base types to the
// Declaration that carries their constructors, interfaces and markers.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register stores d under its declared type.
	// Re-registering the same declaration is a no-op; a different
	// declaration for an already registered type is a conflict.
	Register(d *descriptor.Declaration) error
	// Lookup returns the declaration of t, if present.
	Lookup(t reflect.Type) (d *descriptor.Declaration, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, declaration) association in a Registry snapshot.
type Entry struct {
	// Type is the registered base type.
	Type reflect.Type
	// Declaration is the associated declaration.
	Declaration *descriptor.Declaration
}
