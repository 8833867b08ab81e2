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

package namedspec_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/adaptergo/adapterregistry/namedspec"
)

func TestDeclareAndAncestors(t *testing.T) {
	r := namedspec.NewRegistry()
	ir1 := r.MustDeclare("IR1")
	ir2 := r.MustDeclare("IR2", "IR1")

	var names []string
	for _, a := range ir2.Ancestors() {
		names = append(names, a.ID().(string))
	}
	qt.Check(t, qt.DeepEquals(names, []string{"IR2", "IR1", "⊤"}))
	qt.Check(t, qt.IsTrue(ir2.IsOrExtends(ir1)))
	qt.Check(t, qt.IsFalse(ir1.IsOrExtends(ir2)))
}

func TestDiamondInheritanceDedups(t *testing.T) {
	r := namedspec.NewRegistry()
	r.MustDeclare("Base")
	r.MustDeclare("Left", "Base")
	r.MustDeclare("Right", "Base")
	diamond := r.MustDeclare("Diamond", "Left", "Right")

	var names []string
	for _, a := range diamond.Ancestors() {
		names = append(names, a.ID().(string))
	}
	qt.Check(t, qt.DeepEquals(names, []string{"Diamond", "Left", "Base", "Right", "⊤"}))
}

func TestNamesExcludesTopAndSorts(t *testing.T) {
	r := namedspec.NewRegistry()
	r.MustDeclare("Zebra")
	r.MustDeclare("Alpha")
	qt.Check(t, qt.DeepEquals(r.Names(), []string{"Alpha", "Zebra"}))
}

func TestDuplicateAndUnknownParentErrors(t *testing.T) {
	r := namedspec.NewRegistry()
	r.MustDeclare("A")
	_, err := r.Declare("A")
	qt.Check(t, qt.IsNotNil(err))

	_, err = r.Declare("B", "NoSuchParent")
	qt.Check(t, qt.IsNotNil(err))
}
