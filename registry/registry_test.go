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

package registry_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/adaptergo/adapterregistry/namedspec"
	"github.com/adaptergo/adapterregistry/registry"
	"github.com/adaptergo/adapterregistry/spec"
)

// fixture declares the interfaces used throughout section 8's concrete
// scenarios: IR1, IR2 extends IR1, IP1, IP2 extends IP1, IQ, IQ2 extends
// IQ.
type fixture struct {
	reg      *namedspec.Registry
	ir1, ir2 namedspec.Spec
	ip1, ip2 namedspec.Spec
	iq, iq2  namedspec.Spec
}

func newFixture() *fixture {
	r := namedspec.NewRegistry()
	ir1 := r.MustDeclare("IR1")
	ir2 := r.MustDeclare("IR2", "IR1")
	ip1 := r.MustDeclare("IP1")
	ip2 := r.MustDeclare("IP2", "IP1")
	iq := r.MustDeclare("IQ")
	iq2 := r.MustDeclare("IQ2", "IQ")
	return &fixture{reg: r, ir1: ir1, ir2: ir2, ip1: ip1, ip2: ip2, iq: iq, iq2: iq2}
}

func TestScenario1_RegisterAndLookupBySpecificity(t *testing.T) {
	f := newFixture()
	reg := registry.New()

	reg.Register([]spec.Spec{f.ir1}, f.ip2, "", 12)

	qt.Check(t, qt.Equals(reg.Lookup([]spec.Spec{f.ir1}, f.ip2, "", nil), 12))
	qt.Check(t, qt.Equals(reg.Lookup([]spec.Spec{f.ir2}, f.ip2, "", nil), 12))
	qt.Check(t, qt.Equals(reg.Lookup([]spec.Spec{f.ir1}, f.ip1, "", nil), 12))
	qt.Check(t, qt.IsNil(reg.Lookup([]spec.Spec{f.reg.Top()}, f.ip1, "", nil)))
}

func TestScenario2_NamedRegistrationAndLookupAll(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip2, "", 12)
	reg.Register([]spec.Spec{f.ir1}, f.ip2, "bob", "Bob's 12")

	qt.Check(t, qt.Equals(reg.Lookup1(f.ir1, f.ip1, "bob", nil), "Bob's 12"))

	got := reg.LookupAll([]spec.Spec{f.ir1}, f.ip1)
	want := []registry.NamedValue{
		{Name: "", Value: 12},
		{Name: "bob", Value: "Bob's 12"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LookupAll mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario3_MoreSpecificProvidedWins(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip2, "", 12)
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 11)

	qt.Check(t, qt.Equals(reg.Lookup1(f.ir1, f.ip1, "", nil), 11))
}

func TestScenario4_MoreSpecificRequiredWins(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 11)
	reg.Register([]spec.Spec{f.ir2}, f.ip1, "", 21)

	qt.Check(t, qt.Equals(reg.Lookup1(f.ir2, f.ip1, "", nil), 21))
}

func TestScenario5_NullRequiredIsAFallback(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir2}, f.ip1, "", 21)
	reg.Register([]spec.Spec{spec.NULL_SPEC}, f.ip1, "", 1)

	qt.Check(t, qt.Equals(reg.Lookup1(f.iq, f.ip1, "", nil), 1))
	qt.Check(t, qt.Equals(reg.Lookup1(f.ir2, f.ip1, "", nil), 21))
}

func TestScenario6_SubscriptionOrderIsBroadToNarrow(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip2, "a")
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip2, "b")
	reg.Subscribe([]spec.Spec{spec.NULL_SPEC}, f.ip1, "c")
	reg.Subscribe([]spec.Spec{f.ir2}, f.ip2, "d")

	got := reg.Subscriptions([]spec.Spec{f.ir2}, f.ip1)
	want := []any{"c", "a", "b", "d"}
	qt.Check(t, qt.DeepEquals(got, want))
}

func TestScenario7_QueryAdapterCallsFactory(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	factory := registry.FactoryFunc(func(objs []any) any {
		return "wrapped:" + objs[0].(string)
	})
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", factory)

	got := reg.QueryAdapter(f.ir1, "x", f.ip1, "", "default")
	qt.Check(t, qt.Equals(got, "wrapped:x"))

	decliner := registry.FactoryFunc(func(objs []any) any { return nil })
	reg.Register([]spec.Spec{f.ir2}, f.ip1, "", decliner)
	got = reg.QueryAdapter(f.ir2, "y", f.ip1, "", "default")
	qt.Check(t, qt.Equals(got, "default"))
}

func TestScenario8_UnsubscribeSpecificAndBulk(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip2, "sub1")
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip2, "sub2")
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip1, "sub11")

	reg.Unsubscribe([]spec.Spec{f.ir1}, f.ip2)
	qt.Check(t, qt.DeepEquals(reg.Subscriptions([]spec.Spec{f.ir1}, f.ip1), []any{"sub11"}))

	reg.Unsubscribe([]spec.Spec{f.ir1}, f.ip1, "sub11")
	qt.Check(t, qt.DeepEquals(reg.Subscriptions([]spec.Spec{f.ir1}, f.ip1), []any(nil)))
}

func TestRegisterNilIsUnregister(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 7)
	v, ok := reg.Registered([]spec.Spec{f.ir1}, f.ip1, "")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(v, 7))

	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", nil)
	_, ok = reg.Registered([]spec.Spec{f.ir1}, f.ip1, "")
	qt.Check(t, qt.IsFalse(ok))
}

func TestOverUnregisterIsNoopAndDoesNotBumpGeneration(t *testing.T) {
	reg := registry.New()
	gen := reg.Generation()
	reg.Register([]spec.Spec{}, spec.NULL_SPEC, "missing", nil)
	qt.Check(t, qt.Equals(reg.Generation(), gen))
}

func TestGenerationIncreasesOnlyOnMutation(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	g0 := reg.Generation()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 1)
	g1 := reg.Generation()
	qt.Check(t, qt.Equals(g1, g0+1))

	reg.Subscribe([]spec.Spec{f.ir1}, f.ip1, "x")
	g2 := reg.Generation()
	qt.Check(t, qt.Equals(g2, g1+1))

	reg.Unsubscribe([]spec.Spec{f.ir1}, f.ip1, "not-there")
	qt.Check(t, qt.Equals(reg.Generation(), g2), qt.Commentf("unsubscribe with no matching value must be a no-op"))
}

func TestArityMismatchMisses(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 1)

	got := reg.Lookup([]spec.Spec{f.ir1, f.ir2}, f.ip1, "", "default")
	qt.Check(t, qt.Equals(got, "default"))

	_, ok := reg.Registered([]spec.Spec{f.ir1, f.ir2}, f.ip1, "")
	qt.Check(t, qt.IsFalse(ok))
}

func TestPruningAfterUnregisterLeavesNoResidue(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 1)
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", nil)

	got := reg.LookupAll([]spec.Spec{f.ir1}, f.ip1)
	qt.Check(t, qt.HasLen(got, 0))
}

func TestHandlersAreCalledForSideEffectsOnly(t *testing.T) {
	f := newFixture()
	reg := registry.New()

	var calls []string
	h := registry.FactoryFunc(func(objs []any) any {
		calls = append(calls, objs[0].(string))
		return "ignored"
	})
	reg.Subscribe([]spec.Spec{f.ir1}, spec.NULL_SPEC, h)

	got := reg.Subscribers([]spec.Spec{f.ir1}, []any{"payload"}, spec.NULL_SPEC)
	qt.Check(t, qt.HasLen(got, 0), qt.Commentf("handler results are always discarded"))
	qt.Check(t, qt.DeepEquals(calls, []string{"payload"}))
}

func TestSubscribersSkipsDecliningFactories(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip1, registry.FactoryFunc(func(objs []any) any { return nil }))
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip1, registry.FactoryFunc(func(objs []any) any { return "ok" }))

	got := reg.Subscribers([]spec.Spec{f.ir1}, []any{"x"}, f.ip1)
	qt.Check(t, qt.DeepEquals(got, []any{"ok"}))
}

func TestNullAdapterEmptyRequiredLivesAtRoot(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register(nil, f.ip1, "", "null-adapter-value")

	qt.Check(t, qt.Equals(reg.Lookup(nil, f.ip1, "", nil), "null-adapter-value"))
	v, ok := reg.Registered(nil, f.ip1, "")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(v, "null-adapter-value"))
}

func TestWalkVisitsAdaptersAndSubscriptions(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 11)
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "bob", 12)
	reg.Subscribe([]spec.Spec{f.ir1}, f.ip2, "a")

	var adapters, subs int
	reg.Walk(func(k registry.Key, v any) bool {
		switch k.Kind {
		case registry.AdapterEntry:
			adapters++
			qt.Check(t, qt.Equals(k.Provided, f.ip1.ID()))
		case registry.SubscriptionEntry:
			subs++
			qt.Check(t, qt.Equals(v, "a"))
		}
		return true
	})
	qt.Check(t, qt.Equals(adapters, 2))
	qt.Check(t, qt.Equals(subs, 1))
}

func TestWalkStopsEarlyWhenCallbackReturnsFalse(t *testing.T) {
	f := newFixture()
	reg := registry.New()
	reg.Register([]spec.Spec{f.ir1}, f.ip1, "", 1)
	reg.Register([]spec.Spec{f.ir2}, f.ip1, "", 2)

	visited := 0
	reg.Walk(func(k registry.Key, v any) bool {
		visited++
		return false
	})
	qt.Check(t, qt.Equals(visited, 1))
}
