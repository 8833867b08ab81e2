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
)

func newLookupCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "look up the most specific value for a (required, provided, name) key",
		RunE: mkRunE(c, func(c *Command, args []string) error {
			if err := preloadFiles(c); err != nil {
				return err
			}

			required, _ := c.Flags().GetString("required")
			provided, _ := c.Flags().GetString("provided")
			name, _ := c.Flags().GetString("name")
			all, _ := c.Flags().GetBool("all")

			requiredSpecs, err := resolveSpecList(c, required)
			if err != nil {
				return err
			}
			providedSpec, err := resolveSpec(c, provided)
			if err != nil {
				return err
			}

			if all {
				for _, nv := range c.reg.LookupAll(requiredSpecs, providedSpec) {
					c.Printer().Fprintf(c.OutOrStdout(), "%s: %s\n", nv.Name, formatValue(c, nv.Value))
				}
				return nil
			}

			v := c.reg.Lookup(requiredSpecs, providedSpec, name, nil)
			if v == nil {
				c.reportf("no match for required=%s provided=%s name=%q", required, provided, name)
				return nil
			}
			c.Printer().Fprintln(c.OutOrStdout(), formatValue(c, v))
			return nil
		}),
	}
	cmd.Flags().String("required", "", "comma-separated required spec names")
	cmd.Flags().String("provided", "", `provided spec name, or "*" for NULL_SPEC`)
	cmd.Flags().String("name", "", "registration name")
	cmd.Flags().Bool("all", false, "list every registered name reachable from the key, not just the best match")
	addFormatFlag(cmd)
	return cmd
}
