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

// Package registry implements the query engine described in section 4.3
// and 4.4 of the design: ranking candidates by specificity, merging
// subscription lists in the required order, and the adaptation
// convenience wrappers built on top of lookup.
//
// A value of zero is never a registered value: registering the untyped
// nil is defined as unregistration (section 3, invariant 1). Factories
// that want to report "not applicable" should likewise return nil.
package registry

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mpvl/unique"

	"github.com/adaptergo/adapterregistry/internal/specificity"
	"github.com/adaptergo/adapterregistry/spec"
	"github.com/adaptergo/adapterregistry/trie"
)

// adapterEntry is everything stored for one registered provided spec at
// one trie leaf: the spec itself (so its ancestor chain can be walked at
// query time, see matchProvided) and its per-name values.
type adapterEntry struct {
	spec  spec.Spec
	names map[string]any
}

type adapterLeaf struct {
	provided map[any]*adapterEntry
}

type subscriptionEntry struct {
	spec   spec.Spec
	values []any
}

type subscriptionLeaf struct {
	provided map[any]*subscriptionEntry
}

// Registry is the adapter/subscriber lookup engine. The zero value is not
// usable; construct one with New.
type Registry struct {
	adapters      *trie.Trie[adapterLeaf]
	subscriptions *trie.Trie[subscriptionLeaf]
	generation    uint64

	// InstanceID distinguishes this registry from others loaded into the
	// same process, e.g. when a CLI session has more than one registry
	// file open. It plays no role in lookup semantics.
	InstanceID uuid.UUID
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		adapters:      trie.New[adapterLeaf](),
		subscriptions: trie.New[subscriptionLeaf](),
		InstanceID:    uuid.New(),
	}
}

// Generation returns the monotonic mutation counter. It increases by
// exactly one on every call to Register, Subscribe, or Unsubscribe that
// has an observable effect, and never otherwise; it is never decremented.
// Consumers may cache against it to know when to invalidate their own
// derived state.
func (r *Registry) Generation() uint64 { return r.generation }

func ids(specs []spec.Spec) []any {
	out := make([]any, len(specs))
	for i, s := range specs {
		out[i] = s.ID()
	}
	return out
}

// Register records value under the (required, provided, name) key,
// replacing any existing value there. Passing a nil value unregisters the
// key instead (section 4.6): over-unregistering a key with no current
// entry is a silent no-op and does not advance Generation.
func (r *Registry) Register(required []spec.Spec, provided spec.Spec, name string, value any) {
	path := ids(required)
	if value == nil {
		if r.unregister(path, provided, name) {
			r.generation++
		}
		return
	}

	node := r.adapters.EnsureNodeAt(path)
	leaf := node.EnsureLeaf()
	if leaf.provided == nil {
		leaf.provided = make(map[any]*adapterEntry)
	}
	pid := provided.ID()
	entry, ok := leaf.provided[pid]
	if !ok {
		entry = &adapterEntry{spec: provided, names: make(map[string]any)}
		leaf.provided[pid] = entry
	}
	entry.names[name] = value
	r.generation++
}

func (r *Registry) unregister(path []any, provided spec.Spec, name string) (changed bool) {
	node, ok := r.adapters.NodeAt(path)
	if !ok {
		return false
	}
	leaf, ok := node.Leaf()
	if !ok {
		return false
	}
	pid := provided.ID()
	entry, ok := leaf.provided[pid]
	if !ok {
		return false
	}
	if _, ok := entry.names[name]; !ok {
		return false
	}
	delete(entry.names, name)
	if len(entry.names) == 0 {
		delete(leaf.provided, pid)
	}
	if len(leaf.provided) == 0 {
		node.ClearLeaf()
	}
	r.adapters.Prune(path)
	return true
}

// Registered returns the value stored under the exact (required,
// provided, name) key, bypassing specificity ranking entirely. It
// returns (nil, false) if no such exact key was registered, including
// when required's arity was never used in any registration.
func (r *Registry) Registered(required []spec.Spec, provided spec.Spec, name string) (any, bool) {
	node, ok := r.adapters.NodeAt(ids(required))
	if !ok {
		return nil, false
	}
	leaf, ok := node.Leaf()
	if !ok {
		return nil, false
	}
	entry, ok := leaf.provided[provided.ID()]
	if !ok {
		return nil, false
	}
	v, ok := entry.names[name]
	return v, ok
}

// Lookup walks the lattice of specialisations of (required, provided) as
// described in section 4.3 and returns the most specific registered value
// for name, or def if none matches.
func (r *Registry) Lookup(required []spec.Spec, provided spec.Spec, name string, def any) any {
	if v, ok := r.bestAdapter(required, provided, name); ok {
		return v
	}
	return def
}

// Lookup1 is Lookup for a singleton required sequence.
func (r *Registry) Lookup1(required spec.Spec, provided spec.Spec, name string, def any) any {
	return r.Lookup([]spec.Spec{required}, provided, name, def)
}

// A NamedValue is one entry of a LookupAll result.
type NamedValue struct {
	Name  string
	Value any
}

// LookupAll returns one entry per distinct registration name reachable
// from (required, provided), each holding the winner of
// Lookup(required, provided, name). The order of the result is
// unspecified beyond being sorted by name (callers that care about order
// should rely on that, not on registration order).
func (r *Registry) LookupAll(required []spec.Spec, provided spec.Spec) []NamedValue {
	names := r.reachableNames(required, provided)
	out := make([]NamedValue, 0, len(names))
	for _, name := range names {
		if v, ok := r.bestAdapter(required, provided, name); ok {
			out = append(out, NamedValue{Name: name, Value: v})
		}
	}
	return sortedByName(out)
}

// sortedByName sorts nv by name and collapses any duplicate-named entries
// down to one, using the same sort-then-compact idiom the teacher module
// vendors github.com/mpvl/unique for.
func sortedByName(nv []NamedValue) []NamedValue {
	b := byName(nv)
	unique.Sort(&b)
	return b
}

type byName []NamedValue

func (b byName) Len() int           { return len(b) }
func (b byName) Less(i, j int) bool { return b[i].Name < b[j].Name }
func (b byName) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
func (b *byName) Truncate(n int)    { *b = (*b)[:n] }

// requiredCandidates returns, for each required position, the sequence of
// spec identities whose trie children are worth visiting: the spec's own
// ancestor chain (most specific first) followed by NULL_SPEC.
func requiredCandidates(required []spec.Spec) [][]spec.Spec {
	out := make([][]spec.Spec, len(required))
	for i, s := range required {
		out[i] = spec.Candidates(s)
	}
	return out
}

// bestAdapter finds the single most specific matching value, per section
// 4.3 step 4: minimise, lexicographically, the required-position indices
// then the provided index.
func (r *Registry) bestAdapter(required []spec.Spec, provided spec.Spec, name string) (any, bool) {
	root, ok := r.adapters.Root(len(required))
	if !ok {
		return nil, false
	}
	candidates := requiredCandidates(required)

	var bestTuple specificity.Tuple
	var bestValue any
	found := false

	var walk func(node *trie.Node[adapterLeaf], depth int, tuple specificity.Tuple)
	walk = func(node *trie.Node[adapterLeaf], depth int, tuple specificity.Tuple) {
		if depth == len(required) {
			leaf, ok := node.Leaf()
			if !ok {
				return
			}
			for _, entry := range leaf.provided {
				idx := spec.IndexOf(entry.spec.Ancestors(), provided)
				if idx < 0 {
					continue
				}
				v, ok := entry.names[name]
				if !ok {
					continue
				}
				t := withIndex(tuple, idx)
				if !found || specificity.Less(t, bestTuple) {
					bestTuple, bestValue, found = t, v, true
				}
			}
			return
		}
		for idx, c := range candidates[depth] {
			child, ok := node.Child(c.ID())
			if !ok {
				continue
			}
			walk(child, depth+1, withIndex(tuple, idx))
		}
	}
	walk(root, 0, nil)
	return bestValue, found
}

// reachableNames collects every distinct registration name visible from
// (required, provided), without resolving the winning value for each.
func (r *Registry) reachableNames(required []spec.Spec, provided spec.Spec) []string {
	root, ok := r.adapters.Root(len(required))
	if !ok {
		return nil
	}
	candidates := requiredCandidates(required)
	seen := make(map[string]bool)
	var names []string

	var walk func(node *trie.Node[adapterLeaf], depth int)
	walk = func(node *trie.Node[adapterLeaf], depth int) {
		if depth == len(required) {
			leaf, ok := node.Leaf()
			if !ok {
				return
			}
			for _, entry := range leaf.provided {
				if spec.IndexOf(entry.spec.Ancestors(), provided) < 0 {
					continue
				}
				for name := range entry.names {
					if !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
			return
		}
		for _, c := range candidates[depth] {
			if child, ok := node.Child(c.ID()); ok {
				walk(child, depth+1)
			}
		}
	}
	walk(root, 0)
	return names
}

func withIndex(tuple specificity.Tuple, idx int) specificity.Tuple {
	out := make(specificity.Tuple, len(tuple)+1)
	copy(out, tuple)
	out[len(tuple)] = idx
	return out
}

// Subscribe appends value to the subscription list at the exact
// (required, provided) leaf. provided = spec.NULL_SPEC designates a
// handler bucket (section 4.4). Duplicates are allowed and preserved in
// insertion order.
func (r *Registry) Subscribe(required []spec.Spec, provided spec.Spec, value any) {
	node := r.subscriptions.EnsureNodeAt(ids(required))
	leaf := node.EnsureLeaf()
	if leaf.provided == nil {
		leaf.provided = make(map[any]*subscriptionEntry)
	}
	pid := provided.ID()
	entry, ok := leaf.provided[pid]
	if !ok {
		entry = &subscriptionEntry{spec: provided}
		leaf.provided[pid] = entry
	}
	entry.values = append(entry.values, value)
	r.generation++
}

// Unsubscribe removes a subscription at the exact (required, provided)
// leaf. With a value given, the first equal entry is removed (a no-op if
// none matches); with none given, every subscription at that provided key
// is cleared.
func (r *Registry) Unsubscribe(required []spec.Spec, provided spec.Spec, value ...any) {
	path := ids(required)
	node, ok := r.subscriptions.NodeAt(path)
	if !ok {
		return
	}
	leaf, ok := node.Leaf()
	if !ok {
		return
	}
	pid := provided.ID()
	entry, ok := leaf.provided[pid]
	if !ok {
		return
	}

	changed := false
	switch len(value) {
	case 0:
		delete(leaf.provided, pid)
		changed = true
	default:
		for i, v := range entry.values {
			if v == value[0] {
				entry.values = append(entry.values[:i:i], entry.values[i+1:]...)
				changed = true
				break
			}
		}
		if changed && len(entry.values) == 0 {
			delete(leaf.provided, pid)
		}
	}
	if !changed {
		return
	}
	if len(leaf.provided) == 0 {
		node.ClearLeaf()
	}
	r.subscriptions.Prune(path)
	r.generation++
}

// Subscriptions returns the ordered concatenation of every subscription
// list reachable from (required, provided): less-specific registrations
// first, most-specific last, with insertion order preserved within each
// leaf/provided bucket (section 4.4).
func (r *Registry) Subscriptions(required []spec.Spec, provided spec.Spec) []any {
	root, ok := r.subscriptions.Root(len(required))
	if !ok {
		return nil
	}
	candidates := requiredCandidates(required)

	type group struct {
		tuple specificity.Tuple
		list  []any
	}
	var groups []group

	var walk func(node *trie.Node[subscriptionLeaf], depth int, tuple specificity.Tuple)
	walk = func(node *trie.Node[subscriptionLeaf], depth int, tuple specificity.Tuple) {
		if depth == len(required) {
			leaf, ok := node.Leaf()
			if !ok {
				return
			}
			for _, entry := range leaf.provided {
				idx := spec.IndexOf(entry.spec.Ancestors(), provided)
				if idx < 0 || len(entry.values) == 0 {
					continue
				}
				groups = append(groups, group{tuple: withIndex(tuple, idx), list: entry.values})
			}
			return
		}
		for idx, c := range candidates[depth] {
			if child, ok := node.Child(c.ID()); ok {
				walk(child, depth+1, withIndex(tuple, idx))
			}
		}
	}
	walk(root, 0, nil)

	sort.SliceStable(groups, func(i, j int) bool {
		return specificity.Compare(groups[i].tuple, groups[j].tuple) > 0
	})

	var out []any
	for _, g := range groups {
		out = append(out, g.list...)
	}
	return out
}

// Subscribers materialises every subscription reachable from
// (objSpecs, provided) by calling it as a factory with objs, in the same
// broad-to-narrow order as Subscriptions. A factory result equal to nil
// is skipped. A factory that panics is not recovered here (section 7:
// factory failure propagates unchanged). For handlers
// (provided = spec.NULL_SPEC), factories are called for side effects and
// their results are always discarded.
func (r *Registry) Subscribers(objSpecs []spec.Spec, objs []any, provided spec.Spec) []any {
	factories := r.Subscriptions(objSpecs, provided)
	handler := spec.IsNull(provided)

	out := make([]any, 0, len(factories))
	for _, f := range factories {
		v := callFactory(f, objs)
		if handler || v == nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// QueryAdapter computes Lookup([objSpec], provided, name) and, if a
// factory is found, calls it with obj. A factory result equal to nil is
// treated as a decline and def is returned instead.
func (r *Registry) QueryAdapter(objSpec spec.Spec, obj any, provided spec.Spec, name string, def any) any {
	return r.QueryMultiAdapter([]spec.Spec{objSpec}, []any{obj}, provided, name, def)
}

// QueryMultiAdapter is QueryAdapter for a factory that takes more than
// one object.
func (r *Registry) QueryMultiAdapter(objSpecs []spec.Spec, objs []any, provided spec.Spec, name string, def any) any {
	factory := r.Lookup(objSpecs, provided, name, nil)
	if factory == nil {
		return def
	}
	v := callFactory(factory, objs)
	if v == nil {
		return def
	}
	return v
}

// AdapterHook is QueryAdapter with its first two arguments swapped, so it
// can be installed as an interface's call-hook (section 4.5): calling the
// interface on an object triggers adaptation.
func (r *Registry) AdapterHook(provided spec.Spec, objSpec spec.Spec, obj any, name string, def any) any {
	return r.QueryAdapter(objSpec, obj, provided, name, def)
}

// Factory is the shape a registered value must have to be callable by
// QueryAdapter, QueryMultiAdapter, or Subscribers. Values that do not
// implement it are returned as-is from Lookup/Subscriptions, and
// QueryAdapter and friends use such a value unchanged in place of a
// factory result.
type Factory interface {
	Adapt(objs []any) any
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(objs []any) any

func (f FactoryFunc) Adapt(objs []any) any { return f(objs) }

func callFactory(value any, objs []any) any {
	f, ok := value.(Factory)
	if !ok {
		return value
	}
	return f.Adapt(objs)
}

// EntryKind distinguishes an adapter entry from a subscription entry in
// a Registry.Walk callback.
type EntryKind int

const (
	AdapterEntry EntryKind = iota
	SubscriptionEntry
)

// Key identifies one entry visited by Walk: the identities (Spec.ID
// values, not the Specs themselves — the trie only keeps identities
// along its path) of the required specs it was filed under, in
// registration order, plus its provided spec's identity. Name is the
// registration name for an AdapterEntry and always "" for a
// SubscriptionEntry, which has no name axis (section 4.4).
type Key struct {
	Kind     EntryKind
	Required []any
	Provided any
	Name     string
}

// Walk visits every value currently held by the registry, across every
// arity, in an unspecified order: every (required, provided, name)
// adapter once, and every subscription value once, in each bucket's
// insertion order. Returning false from fn stops the walk early. This
// is the enumeration primitive external tooling (e.g. adapterctl dump)
// uses instead of reimplementing trie traversal; lookup itself never
// calls it.
func (r *Registry) Walk(fn func(Key, any) bool) {
	stop := false
	r.adapters.Walk(func(path []any, leaf *adapterLeaf) bool {
		for pid, entry := range leaf.provided {
			for name, v := range entry.names {
				if !fn(Key{Kind: AdapterEntry, Required: path, Provided: pid, Name: name}, v) {
					stop = true
					return false
				}
			}
		}
		return true
	})
	if stop {
		return
	}
	r.subscriptions.Walk(func(path []any, leaf *subscriptionLeaf) bool {
		for pid, entry := range leaf.provided {
			for _, v := range entry.values {
				if !fn(Key{Kind: SubscriptionEntry, Required: path, Provided: pid}, v) {
					return false
				}
			}
		}
		return true
	})
}
