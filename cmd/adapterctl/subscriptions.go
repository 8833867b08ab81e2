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

func newSubscriptionsCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "list subscriptions reachable from a (required, provided) key, broad-to-narrow",
		RunE: mkRunE(c, func(c *Command, args []string) error {
			if err := preloadFiles(c); err != nil {
				return err
			}

			required, _ := c.Flags().GetString("required")
			provided, _ := c.Flags().GetString("provided")

			requiredSpecs, err := resolveSpecList(c, required)
			if err != nil {
				return err
			}
			providedSpec, err := resolveSpec(c, provided)
			if err != nil {
				return err
			}

			subs := c.reg.Subscriptions(requiredSpecs, providedSpec)
			if len(subs) == 0 {
				c.Printer().Fprintln(c.OutOrStdout(), "(no subscriptions)")
				return nil
			}
			for _, v := range subs {
				c.Printer().Fprintln(c.OutOrStdout(), formatValue(c, v))
			}
			return nil
		}),
	}
	cmd.Flags().String("required", "", "comma-separated required spec names")
	cmd.Flags().String("provided", "", `provided spec name, "*" for handlers registered at NULL_SPEC`)
	addFormatFlag(cmd)
	return cmd
}
