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

// Command adapterctl is a small inspection tool for adapter registry
// files (see package registryfile): it loads one or more YAML documents
// into an in-memory registry and lets the caller run lookups and
// subscription queries against the result, without writing any Go.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/adaptergo/adapterregistry/namedspec"
	"github.com/adaptergo/adapterregistry/registry"
)

// ErrPrintedError indicates the error has already been written to
// stderr by the failing command, so the top-level caller shouldn't
// print it again.
var ErrPrintedError = fmt.Errorf("adapterctl: terminating because of errors")

// Command wraps a *cobra.Command with the shared state every
// subcommand operates on: the specs declared by every loaded registry
// file and the registry those files were loaded into.
type Command struct {
	*cobra.Command
	root *cobra.Command

	specs   *namedspec.Registry
	reg     *registry.Registry
	printer *message.Printer

	hasErr bool
}

// getLang resolves the locale adapterctl's message.Printer formats with,
// the same way the teacher's cmd/cue/cmd/common.go getLang does: LC_ALL
// overrides LANG, and anything from the first "." on (an encoding suffix
// like "UTF-8") is stripped before being parsed as a BCP 47 tag.
func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

// Printer returns the command tree's shared message.Printer, linking
// x/text as adapterctl's localizer the same way the teacher's root.go
// and common.go do for cue's own error and value output.
func (c *Command) Printer() *message.Printer { return c.printer }

type runFunction func(c *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.Printf("adapterctl: running %s %v", cmd.Name(), args)
		}
		return f(c, args)
	}
}

// New builds the adapterctl command tree. Every subcommand shares one
// namedspec.Registry and one registry.Registry, populated by --file
// flags and the "load" subcommand before a query subcommand runs.
func New(args []string) *Command {
	root := &cobra.Command{
		Use:           "adapterctl",
		Short:         "inspect adapter registry files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	c := &Command{
		Command: root,
		root:    root,
		specs:   namedspec.NewRegistry(),
		reg:     registry.New(),
		printer: message.NewPrinter(getLang()),
	}

	root.PersistentFlags().StringArrayP("file", "f", nil, "registry file to load before running the command (repeatable)")
	root.PersistentFlags().Bool("verbose", false, "log each subcommand invocation to stderr")

	for _, sub := range []*cobra.Command{
		newLoadCmd(c),
		newLookupCmd(c),
		newSubscriptionsCmd(c),
		newDumpCmd(c),
	} {
		root.AddCommand(sub)
	}

	root.SetArgs(args)
	return c
}

// preloadFiles applies every --file given to the invoked subcommand, in
// order, before that subcommand's own logic runs.
func preloadFiles(c *Command) error {
	files, err := c.Command.Flags().GetStringArray("file")
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := loadFile(c, path); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the command tree built by New.
func (c *Command) Run() error {
	if err := c.root.Execute(); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

func (c *Command) reportf(format string, args ...any) {
	c.hasErr = true
	c.printer.Fprintf(c.Command.OutOrStderr(), format+"\n", args...)
}

func main() {
	c := New(os.Args[1:])
	if err := c.Run(); err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
