// Copyright 2026 The Adapter Registry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package namedspec

import "github.com/adaptergo/adapterregistry/errors"

func errReserved(name string) error {
	return errors.NewKeyError([]string{name}, "namedspec: %q is reserved for the top spec", name)
}

func errDuplicate(name string) error {
	return errors.NewKeyError([]string{name}, "namedspec: %q already declared", name)
}

func errUnknownParent(name, parent string) error {
	return errors.NewKeyError([]string{name}, "namedspec: unknown parent %q for %q", parent, name)
}
