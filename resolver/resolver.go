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

package resolver

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/inspect/apis"
	"dirpx.dev/inspect/descriptor"
	uref "dirpx.dev/inspect/utils/reflect"
)

// ErrUndescribed is returned when no strategy handled the type.
var ErrUndescribed = errors.New("inspect(resolver): no strategy described the type")

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryDescribe calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Describe reduces t to its base type and runs strategies in order until
// one handles it. The handling strategy's error, if any, is returned as is.
func (r chain) Describe(t reflect.Type, cfg apis.Config) (*descriptor.Type, error) {
	base, err := uref.Normalize(t, cfg)
	if err != nil {
		return nil, err
	}
	for _, s := range r.strats {
		if desc, ok, err := s.TryDescribe(base, cfg); ok {
			return desc, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUndescribed, base)
}
