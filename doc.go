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

// Package inspect provides process-wide runtime type introspection.
//
// Given a type, inspect answers three questions:
//
//   - which fields declared directly on it carry a given marker,
//   - which method names it declares, followed by those of the interfaces
//     it directly implements,
//   - how to build an instance of it from an argument list, picking the
//     first declared initializer whose parameters accept the arguments.
//
// # Declarations
//
// Go reflection reports fields, struct tags and exported methods, but it
// has no notion of constructors, of "implements" clauses or of unexported
// methods. Types supply those facts through a descriptor.Declaration,
// usually from an init func:
//
//	func init() {
//		inspect.MustDeclare(descriptor.Declare[Villager]().
//			Constructor(NewVillager).
//			RestrictedConstructor(newVillager).
//			Implements(reflect.TypeFor[Greeter]()))
//	}
//
// A type may instead implement apis.Declarer and return its declaration
// from InspectDeclaration. Types with no declaration at all are described
// from reflection alone and get an implicit zero-value initializer.
//
// Markers come from the struct tag (`mark:"id,audit"` by default, see
// apis.Config.MarkerTagKey) and from Declaration.Mark.
//
// # Construction
//
//	v, err := inspect.CreateInstance[*Villager]("Bob", "farmer")
//
// Initializers are tried in declaration order and the first whose
// parameter types accept the dynamic argument types is invoked, whether
// public or restricted. Failures are *ConstructorError values; use
// errors.Is with ErrNoMatchingConstructor or ErrInvocation to tell them
// apart, and errors.Is or errors.As against the constructor's own error to
// reach the cause. An untyped nil argument matches no parameter.
//
// # Design
//
// The package keeps a read-mostly global snapshot holding a Config, a
// Registry of declarations, a Resolver that turns a reflect.Type into a
// descriptor.Type, and a Builder that constructs the other two. Readers
// load the snapshot atomically and never lock. Writers (SetConfig,
// SetBuilder, SetRegistry, SetResolver, SetAll and the Pin helpers) take
// a build lock, derive a new snapshot and publish it.
//
// The default resolver tries, in order: apis.Declarer on the type, the
// registry, and plain reflection. Descriptors are assembled on every call
// and never cached.
//
// # Pinning
//
// SetRegistry and SetResolver pin the layer they install. A pinned layer
// is not rebuilt by SetConfig or SetBuilder until it is unpinned.
package inspect
