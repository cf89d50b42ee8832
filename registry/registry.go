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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/config"
	"dirpx.dev/inspect/descriptor"
	uref "dirpx.dev/inspect/utils/reflect"
)

var (
	// ErrNilDeclaration is returned when a nil declaration is provided.
	ErrNilDeclaration = errors.New("inspect(registry): nil declaration provided")
	// ErrConflictingDeclaration indicates an attempt to register a second,
	// different declaration for an already declared type.
	ErrConflictingDeclaration = errors.New("inspect(registry): conflicting type declaration")
)

// New constructs a Registry that normalizes lookup types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps the declared base type to its declaration.
	m sync.Map // map[reflect.Type]*descriptor.Declaration
	// count tracks the number of registered entries.
	count int
}

// Register stores d under its declared type.
// It is idempotent for the same declaration pointer. A declaration that
// recorded an error while being built is rejected with that error.
func (r *registry) Register(d *descriptor.Declaration) error {
	// Validate inputs early.
	if d == nil {
		return ErrNilDeclaration
	}
	if err := d.Err(); err != nil {
		return err
	}
	t := d.Type()

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(t); ok {
		return conflict(t, old.(*descriptor.Declaration), d)
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(t); ok {
		return conflict(t, old.(*descriptor.Declaration), d)
	}

	r.m.Store(t, d)
	r.count++
	return nil
}

// conflict returns nil for an idempotent re-registration.
func conflict(t reflect.Type, old, d *descriptor.Declaration) error {
	if old == d {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrConflictingDeclaration, t)
}

// Lookup returns the declaration of t's base type, if present.
func (r *registry) Lookup(t reflect.Type) (*descriptor.Declaration, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	if v, ok := r.m.Load(nt); ok {
		return v.(*descriptor.Declaration), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:        key.(reflect.Type),
			Declaration: value.(*descriptor.Declaration),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
