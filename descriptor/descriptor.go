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

// Package descriptor holds the read-only facts the inspector works on:
// fields with their markers, method names, directly implemented interfaces
// and initializers. It also provides Declaration, the side-table through
// which a type declares what Go reflection cannot report on its own.
package descriptor

import (
	"reflect"
	"slices"
)

// Marker is a tag kind attachable to a field.
type Marker string

// Access is the accessibility flag of an Initializer.
type Access uint8

const (
	// Public initializers may be invoked through Initializer.Call.
	Public Access = iota
	// Restricted initializers are only reachable through Initializer.ForceCall.
	Restricted
)

// String returns a human-readable access name.
func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Restricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// Type describes a single base type.
// A Type is assembled per query and must not be mutated once returned.
type Type struct {
	// Go is the described base type (never a pointer).
	Go reflect.Type
	// Fields are the fields declared directly on Go, in declaration order.
	Fields []Field
	// Methods are the methods declared directly on Go.
	Methods []Method
	// Interfaces are the directly implemented interfaces, in declaration order.
	Interfaces []Interface
	// Initializers are the declared initializers, in declaration order.
	Initializers []Initializer
}

// Field is a directly declared field.
type Field struct {
	Name     string
	Type     reflect.Type
	Exported bool
	Markers  []Marker
}

// HasMarker reports whether m is attached to f.
func (f Field) HasMarker(m Marker) bool {
	return slices.Contains(f.Markers, m)
}

// Method is a method declared on a type or an interface.
// Several Method entries may share a Name.
type Method struct {
	Name string
}

// Interface is a capability contract a type directly implements.
type Interface struct {
	Type    reflect.Type
	Methods []Method
}
