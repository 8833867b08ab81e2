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
	"github.com/spf13/cobra"

	"github.com/adaptergo/adapterregistry/registry"
)

func newDumpCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "print every declared spec, registered entry, and the registry's generation counter",
		RunE: mkRunE(c, func(c *Command, args []string) error {
			if err := preloadFiles(c); err != nil {
				return err
			}
			specsOnly, _ := c.Flags().GetBool("specs-only")

			w := c.OutOrStdout()
			p := c.Printer()
			for _, name := range c.specs.Names() {
				p.Fprintln(w, name)
			}
			if !specsOnly {
				c.reg.Walk(func(k registry.Key, v any) bool {
					switch k.Kind {
					case registry.AdapterEntry:
						p.Fprintf(w, "adapter  required=%v provided=%v name=%q value=%s\n", k.Required, k.Provided, k.Name, formatValue(c, v))
					case registry.SubscriptionEntry:
						p.Fprintf(w, "subscription required=%v provided=%v value=%s\n", k.Required, k.Provided, formatValue(c, v))
					}
					return true
				})
			}
			p.Fprintf(w, "instance %s generation %d\n", c.reg.InstanceID, c.reg.Generation())
			return nil
		}),
	}
	cmd.Flags().Bool("specs-only", false, "print declared spec names and generation only, skipping registered entries")
	addFormatFlag(cmd)
	return cmd
}
