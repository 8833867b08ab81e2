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

// Package namedspec is a minimal, name-based implementation of spec.Spec,
// for hosts that have no existing interface-declaration machinery of
// their own: the registryfile loader and the adapterctl CLI both need a
// concrete Spec to hand the registry, and neither has access to a real
// host type system to ask for one.
//
// Specs are declared by name with an explicit parent list; every spec
// that declares no parents is attached directly under the registry's
// synthetic top spec, so every chain terminates the same way real
// interface inheritance does (section 4.1: ancestors always end at TOP).
package namedspec

import (
	"sort"

	"github.com/adaptergo/adapterregistry/spec"
)

const topName = "⊤"

type node struct {
	name    string
	parents []*node
}

// Registry interns spec names into a small inheritance lattice.
type Registry struct {
	nodes map[string]*node
	top   *node
}

// NewRegistry creates a Registry containing only the synthetic top spec.
func NewRegistry() *Registry {
	top := &node{name: topName}
	return &Registry{nodes: map[string]*node{topName: top}, top: top}
}

// Declare adds a new named spec with the given parents, which must
// already be declared. A spec declared with no parents is attached
// directly beneath the registry's top spec.
func (r *Registry) Declare(name string, parents ...string) (Spec, error) {
	if name == topName {
		return Spec{}, errReserved(name)
	}
	if _, exists := r.nodes[name]; exists {
		return Spec{}, errDuplicate(name)
	}
	n := &node{name: name}
	if len(parents) == 0 {
		n.parents = []*node{r.top}
	} else {
		for _, p := range parents {
			pn, ok := r.nodes[p]
			if !ok {
				return Spec{}, errUnknownParent(name, p)
			}
			n.parents = append(n.parents, pn)
		}
	}
	r.nodes[name] = n
	return Spec{n}, nil
}

// MustDeclare is Declare, panicking on error. It exists for tests and
// for the small amount of static setup code that can never legitimately
// fail.
func (r *Registry) MustDeclare(name string, parents ...string) Spec {
	s, err := r.Declare(name, parents...)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the previously declared spec with the given name.
func (r *Registry) Get(name string) (Spec, bool) {
	n, ok := r.nodes[name]
	if !ok {
		return Spec{}, false
	}
	return Spec{n}, true
}

// Top returns the registry's synthetic universal spec.
func (r *Registry) Top() Spec { return Spec{r.top} }

// Names returns every declared spec name except the synthetic top spec,
// sorted lexicographically. It exists for tools like adapterctl's dump
// command that need to enumerate a registry's contents rather than
// resolve one name at a time.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.nodes))
	for name := range r.nodes {
		if name == topName {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Spec is a named node in a Registry's lattice. It implements
// spec.Spec.
type Spec struct{ n *node }

// Name returns the declared name, or "" for the zero Spec.
func (s Spec) Name() string {
	if s.n == nil {
		return ""
	}
	return s.n.name
}

func (s Spec) ID() any { return s.n.name }

// Ancestors returns a preorder, duplicate-eliding walk of s and its
// declared parents, most specific first, always ending at the registry's
// top spec.
func (s Spec) Ancestors() []spec.Spec {
	seen := make(map[string]bool)
	var out []spec.Spec
	var top *node
	var visit func(n *node)
	visit = func(n *node) {
		if seen[n.name] {
			return
		}
		seen[n.name] = true
		if n.name == topName {
			top = n
			return
		}
		out = append(out, Spec{n})
		for _, p := range n.parents {
			visit(p)
		}
	}
	visit(s.n)
	if top != nil {
		out = append(out, Spec{top})
	}
	return out
}

func (s Spec) IsOrExtends(other spec.Spec) bool {
	return spec.IndexOf(s.Ancestors(), other) >= 0
}
