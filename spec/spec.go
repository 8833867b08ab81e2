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

// Package spec abstracts the interface-specification model that the
// adapter registry is built on. The registry owns no notion of interface
// declaration, inheritance, or instrumentation of implementing types; it
// only consumes a Spec's identity and ancestor chain.
package spec

// A Spec is an opaque handle to an interface specification (or any other
// host-defined notion of "type"). The registry never inspects a Spec
// beyond the methods below.
type Spec interface {
	// ID is a stable equality/hash key for this spec. Two Specs that
	// denote the same interface must return equal IDs.
	ID() any

	// Ancestors returns the linearisation of this spec's inheritance
	// chain, from the spec itself through its bases to the host's
	// universal top spec. The registry treats this order as
	// authoritative and never re-derives it.
	Ancestors() []Spec

	// IsOrExtends reports whether s is other, or transitively extends
	// other.
	IsOrExtends(other Spec) bool
}

// nullSpec is the sentinel Spec implementation backing NULL_SPEC. It is
// deliberately unexported: the only valid value of this type is NULL_SPEC
// itself, recognised by its type (see IsNull).
type nullSpec struct{}

// sentinelID is a unique, unexported identity used as NULL_SPEC's ID so
// that it can never collide with a host-assigned spec identity.
var sentinelID = new(struct{ _ byte })

func (nullSpec) ID() any { return sentinelID }

// Ancestors of NULL_SPEC is just itself: NULL_SPEC is not part of any
// real inheritance lattice, it is a wildcard appended after every real
// ancestor chain (see IsNull and Candidates).
func (nullSpec) Ancestors() []Spec { return []Spec{NULL_SPEC} }

func (nullSpec) IsOrExtends(other Spec) bool { return IsNull(other) }

// NULL_SPEC is the wildcard spec: at a required key position it matches
// any query spec, and ranks last (least specific) among the acceptable
// choices at that position. Registering NULL_SPEC as a required position
// means "match any". As a provided spec it matches only a query whose
// provided spec is NULL_SPEC itself; using it as a provided spec in a
// call to Subscribe designates a handler registration.
var NULL_SPEC Spec = nullSpec{}

// IsNull reports whether s is the NULL_SPEC sentinel.
func IsNull(s Spec) bool {
	_, ok := s.(nullSpec)
	return ok
}

// Less reports whether a is at least as specific as b, i.e. a <= b in the
// partial order of section 4.1: a <= b iff b is in ancestors(a). NULL_SPEC
// compares strictly greater than (less specific than) every real spec.
func Less(a, b Spec) bool {
	if IsNull(b) {
		return true
	}
	if IsNull(a) {
		return false
	}
	for _, anc := range a.Ancestors() {
		if IDEqual(anc, b) {
			return true
		}
	}
	return false
}

// IDEqual reports whether a and b share the same identity. It is the
// equality notion the registry uses for every map key derived from a
// Spec.
func IDEqual(a, b Spec) bool {
	return a.ID() == b.ID()
}

// IndexOf returns the position of target within chain, comparing by ID,
// or -1 if target does not occur in chain. Lower indices mean a more
// specific match; the registry's ranking tuples are built entirely from
// these indices.
func IndexOf(chain []Spec, target Spec) int {
	for i, s := range chain {
		if IDEqual(s, target) {
			return i
		}
	}
	return -1
}

// Candidates returns the ordered sequence of specs that a registration at
// this key position may legally be filed under to still match a query for
// q: q's own ancestor chain, most specific first, followed by the
// NULL_SPEC wildcard. This is the "acceptable specs at trie depth i" from
// section 4.3 step 1.
func Candidates(q Spec) []Spec {
	if IsNull(q) {
		return []Spec{NULL_SPEC}
	}
	anc := q.Ancestors()
	out := make([]Spec, 0, len(anc)+1)
	out = append(out, anc...)
	out = append(out, NULL_SPEC)
	return out
}
