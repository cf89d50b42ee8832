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

package inspect

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/builder"
	"dirpx.dev/inspect/config"
	"dirpx.dev/inspect/descriptor"
	"dirpx.dev/inspect/inspector"
)

func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("inspect: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("inspect: builder returned nil resolver")
)

// Construction failures. See inspector.ConstructorError.
var (
	ErrNoMatchingConstructor = inspector.ErrNoMatchingConstructor
	ErrInvocation            = inspector.ErrInvocation
)

// ConstructorError reports a failed instance creation.
type ConstructorError = inspector.ConstructorError

// MarkedFields lists the names of fields declared directly on t that carry
// marker m, in field order and without duplicates.
func MarkedFields(t reflect.Type, m descriptor.Marker) []string {
	return st.Load().inspector().MarkedFields(t, m)
}

// MethodNames lists the method names declared directly on t, followed by
// those of the interfaces t is declared to implement. Each name appears once.
func MethodNames(t reflect.Type) []string {
	return st.Load().inspector().MethodNames(t)
}

// Describe returns a freshly assembled descriptor of t.
func Describe(t reflect.Type) (*descriptor.Type, error) {
	return st.Load().inspector().Describe(t)
}

// NewInstance creates an instance of t from args using the first declared
// initializer, public or restricted, whose parameters accept them.
func NewInstance(t reflect.Type, args ...any) (any, error) {
	return st.Load().inspector().NewInstance(t, args...)
}

// CreateInstance is the typed form of NewInstance. T may be the base type
// or a pointer to it.
func CreateInstance[T any](args ...any) (T, error) {
	var zero T
	v, err := NewInstance(reflect.TypeFor[T](), args...)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("inspect: instance is %T, want %v", v, reflect.TypeFor[T]())
	}
	return out, nil
}

// Declare adds d to the global registry.
func Declare(d *descriptor.Declaration) error {
	return st.Load().reg.Register(d)
}

// MustDeclare is like Declare but panics on error. It is meant for init funcs.
func MustDeclare(d *descriptor.Declaration) {
	if err := Declare(d); err != nil {
		panic(err)
	}
}

// SetAll explicitly sets all global state components.
//
// A nil cfg or bld leaves the current one in place. A nil reg or res is
// rebuilt by the builder and left unpinned; a non-nil one is pinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}

	next.reg, next.preg = reg, reg != nil
	if reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	next.res, next.pres = res, res != nil
	if res == nil {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}
	publish(&next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds unpinned layers.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.cfg = cfg
	next.rebuild()
	publish(&next)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. The resolver is
// rebuilt over it unless pinned. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.reg, next.preg = reg, true
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, reg, next.res)
	}
	publish(&next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.res, next.pres = res, true
	publish(&next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and rebuilds unpinned layers with
// it. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.bld = b
	next.rebuild()
	publish(&next)
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() { setPins(func(s *state) { s.preg = true }) }

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() { setPins(func(s *state) { s.preg = false }) }

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver stops the global resolver from being rebuilt.
func PinResolver() { setPins(func(s *state) { s.pres = true }) }

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() { setPins(func(s *state) { s.pres = false }) }

func setPins(f func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	f(&next)
	publish(&next)
}

// buildMu serializes writers so a partially built snapshot is never published.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published via st.Store. Writers copy the
// current snapshot, change the copy and swap it in.
type state struct {
	cfg apis.Config
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg and pres mark the registry and resolver as pinned.
	preg bool
	pres bool
}

// rebuild replaces the unpinned layers of an unpublished snapshot.
func (s *state) rebuild() {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, s.reg)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, s.res)
	}
}

func (s *state) inspector() *inspector.Inspector {
	return inspector.New(s.res, s.cfg)
}

func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}
