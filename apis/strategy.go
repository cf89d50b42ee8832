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

// Strategy is a pluggable description step. A Resolver chains strategies
// in order (e.g., Declarer -> Registry -> Reflect).
type Strategy interface {
	// TryDescribe attempts to describe t according to cfg.
	// It returns (desc, true, nil) if handled, (nil, true, err) if t was
	// recognized but its declaration is invalid, and (nil, false, nil) to
	// fall through.
	TryDescribe(t reflect.Type, cfg Config) (desc *descriptor.Type, handled bool, err error)
}
