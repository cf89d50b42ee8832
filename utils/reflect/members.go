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

package reflect

import (
	"reflect"
	"runtime"
	"strings"

	"dirpx.dev/inspect/descriptor"
)

// autogenerated is the file the Go toolchain reports for compiler-generated
// method wrappers, which is what promoted methods resolve to.
const autogenerated = "<autogenerated>"

// Fields returns the fields declared directly on t, in declaration order.
// Embedded fields are reported as fields; the fields they promote are not.
// Markers are read from the comma-separated value of the tagKey struct tag.
// Non-struct types have no fields.
func Fields(t reflect.Type, tagKey string, exportedOnly bool) []descriptor.Field {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	out := make([]descriptor.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if exportedOnly && !sf.IsExported() {
			continue
		}
		out = append(out, descriptor.Field{
			Name:     sf.Name,
			Type:     sf.Type,
			Exported: sf.IsExported(),
			Markers:  ParseMarkers(sf.Tag.Get(tagKey)),
		})
	}
	return out
}

// ParseMarkers splits a tag value like "id, audit" into markers.
// Empty segments are dropped.
func ParseMarkers(tag string) []descriptor.Marker {
	if tag == "" {
		return nil
	}
	var out []descriptor.Marker
	for _, part := range strings.Split(tag, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, descriptor.Marker(p))
		}
	}
	return out
}

// Methods returns the methods declared directly on t with either receiver
// kind, in the order reflection enumerates the method set of *t.
// Methods promoted from embedded fields are excluded. Reflection cannot
// observe unexported methods of non-interface types.
//
// For an interface type the result is InterfaceMethods(t).
func Methods(t reflect.Type) []descriptor.Method {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Interface {
		return InterfaceMethods(t)
	}
	promoted := promotedNames(t)
	pt := reflect.PointerTo(t)
	out := make([]descriptor.Method, 0, pt.NumMethod())
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if promoted[m.Name] && !ownMethod(t, m) {
			continue
		}
		out = append(out, descriptor.Method{Name: m.Name})
	}
	return out
}

// InterfaceMethods returns the methods of interface type it, exported and
// unexported, in reflection order. Go flattens embedded interfaces into the
// method set, so their methods are included.
func InterfaceMethods(it reflect.Type) []descriptor.Method {
	if it == nil || it.Kind() != reflect.Interface {
		return nil
	}
	out := make([]descriptor.Method, 0, it.NumMethod())
	for i := 0; i < it.NumMethod(); i++ {
		out = append(out, descriptor.Method{Name: it.Method(i).Name})
	}
	return out
}

// promotedNames collects the method names t may inherit through its
// embedded fields.
func promotedNames(t reflect.Type) map[string]bool {
	if t.Kind() != reflect.Struct {
		return nil
	}
	names := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		ft := sf.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		for j := 0; j < ft.NumMethod(); j++ {
			names[ft.Method(j).Name] = true
		}
	}
	return names
}

// ownMethod reports whether m, a method of *t whose name t could also
// inherit, has a body written for t rather than a compiler-generated
// promotion wrapper.
func ownMethod(t reflect.Type, m reflect.Method) bool {
	fn := m.Func
	// Value-receiver methods: the *t entry is always a wrapper, the t entry is the body.
	if vm, ok := t.MethodByName(m.Name); ok {
		fn = vm.Func
	}
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}
	file, _ := f.FileLine(f.Entry())
	return file != autogenerated
}
