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
	"os"

	"github.com/spf13/cobra"

	"github.com/adaptergo/adapterregistry/registryfile"
)

func loadFile(c *Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("adapterctl: %w", err)
	}
	defer f.Close()
	if err := registryfile.Load(f, c.specs, c.reg); err != nil {
		return fmt.Errorf("adapterctl: loading %s: %w", path, err)
	}
	return nil
}

func newLoadCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>...",
		Short: "load one or more registry files into the session",
		Args:  cobra.MinimumNArgs(1),
		RunE: mkRunE(c, func(c *Command, args []string) error {
			if err := preloadFiles(c); err != nil {
				return err
			}
			for _, path := range args {
				if err := loadFile(c, path); err != nil {
					return err
				}
			}
			c.Printer().Fprintf(c.OutOrStdout(), "instance %s generation %d\n", c.reg.InstanceID, c.reg.Generation())
			return nil
		}),
	}
}
