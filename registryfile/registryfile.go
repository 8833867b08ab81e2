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

// Package registryfile bulk-loads a registry.Registry from a declarative
// YAML document, so a registry can be seeded once at startup instead of
// only through programmatic Register/Subscribe calls. This is an
// addition on top of section 4's operations, not a replacement for them:
// loading a file is just a sequence of ordinary Register and Subscribe
// calls.
package registryfile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/adaptergo/adapterregistry/errors"
	"github.com/adaptergo/adapterregistry/namedspec"
	"github.com/adaptergo/adapterregistry/registry"
	"github.com/adaptergo/adapterregistry/spec"
)

// wildcard is the document-level spelling of spec.NULL_SPEC: an empty or
// "*" spec name in a required/provided position.
const wildcard = "*"

// SpecDecl declares one named spec, per namedspec.Registry.Declare.
type SpecDecl struct {
	Name    string   `yaml:"name"`
	Parents []string `yaml:"parents,omitempty"`
}

// Registration mirrors one Registry.Register call.
type Registration struct {
	Required []string `yaml:"required"`
	Provided string   `yaml:"provided"`
	Name     string   `yaml:"name,omitempty"`
	Value    any      `yaml:"value"`
}

// Subscription mirrors one Registry.Subscribe call.
type Subscription struct {
	Required []string `yaml:"required"`
	Provided string   `yaml:"provided"`
	Value    any      `yaml:"value"`
}

// Document is the full shape of a registry file.
type Document struct {
	Specs         []SpecDecl     `yaml:"specs,omitempty"`
	Registrations []Registration `yaml:"registrations,omitempty"`
	Subscriptions []Subscription `yaml:"subscriptions,omitempty"`
}

// Load decodes a YAML document from r, declaring any new specs into
// specs and replaying its registrations and subscriptions into reg. Spec
// names already declared in specs may be referenced without a matching
// "specs:" entry in the document.
func Load(r io.Reader, specs *namedspec.Registry, reg *registry.Registry) error {
	dec := yaml.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("registryfile: decoding document: %w", err)
	}
	return Apply(doc, specs, reg)
}

// Apply replays an already-decoded Document into specs and reg. It is
// the part of Load that doesn't touch I/O, split out so callers that
// build a Document programmatically (e.g. from an embedded default
// configuration) can skip the YAML round trip.
func Apply(doc Document, specs *namedspec.Registry, reg *registry.Registry) error {
	for _, s := range doc.Specs {
		if _, ok := specs.Get(s.Name); ok {
			continue
		}
		if _, err := specs.Declare(s.Name, s.Parents...); err != nil {
			return err
		}
	}

	resolve := func(name string) (spec.Spec, error) {
		if name == "" || name == wildcard {
			return spec.NULL_SPEC, nil
		}
		s, ok := specs.Get(name)
		if !ok {
			return nil, errors.NewKeyError([]string{name}, "registryfile: unresolved spec %q", name)
		}
		return s, nil
	}

	for _, r := range doc.Registrations {
		required, err := resolveAll(resolve, r.Required)
		if err != nil {
			return err
		}
		provided, err := resolve(r.Provided)
		if err != nil {
			return err
		}
		reg.Register(required, provided, r.Name, r.Value)
	}

	for _, s := range doc.Subscriptions {
		required, err := resolveAll(resolve, s.Required)
		if err != nil {
			return err
		}
		provided, err := resolve(s.Provided)
		if err != nil {
			return err
		}
		reg.Subscribe(required, provided, s.Value)
	}

	return nil
}

func resolveAll(resolve func(string) (spec.Spec, error), names []string) ([]spec.Spec, error) {
	out := make([]spec.Spec, len(names))
	for i, n := range names {
		s, err := resolve(n)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
