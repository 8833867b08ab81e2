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

package main

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/adaptergo/adapterregistry/spec"
)

// addFormatFlag adds the --format flag shared by lookup, subscriptions
// and dump: "pretty" (default, github.com/kr/pretty's %#v-style
// struct dump) or "go" (fmt's %#v, no field names expanded recursively).
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", `value rendering: "pretty" or "go"`)
}

func formatValue(c *Command, v any) string {
	format, _ := c.Flags().GetString("format")
	if format == "go" {
		return fmt.Sprintf("%#v", v)
	}
	return fmt.Sprintf("%# v", pretty.Formatter(v))
}

// resolveSpec resolves one spec name to a declared spec.Spec, treating
// "", "*" and the literal "NULL" as spec.NULL_SPEC, per the --provided
// flag convention shared by lookup and subscriptions.
func resolveSpec(c *Command, name string) (spec.Spec, error) {
	switch name {
	case "", "*", "NULL":
		return spec.NULL_SPEC, nil
	}
	s, ok := c.specs.Get(name)
	if !ok {
		return nil, fmt.Errorf("adapterctl: unknown spec %q", name)
	}
	return s, nil
}

// resolveSpecList resolves a comma-separated --required flag value into
// its required sequence, in the order given.
func resolveSpecList(c *Command, csv string) ([]spec.Spec, error) {
	if csv == "" {
		return nil, nil
	}
	names := strings.Split(csv, ",")
	out := make([]spec.Spec, len(names))
	for i, n := range names {
		s, err := resolveSpec(c, strings.TrimSpace(n))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
