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

// Package errors defines the error types shared by the registryfile
// loader and the adapterctl CLI.
//
// The registry engine itself (spec, trie, registry) raises none of these:
// per the design, a lookup miss, an over-unregister, or an arity mismatch
// is not an error, it is a miss. This package exists for the one class of
// error the ambient stack adds on top of that: a spec value, or a
// configuration document, that fails the contract the registry assumes.
package errors

import (
	"errors"
	"fmt"
)

// New is a convenience wrapper for the standard library's errors.New. It
// does not attach a Path.
func New(msg string) error {
	return errors.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target's type.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Unwrap returns the result of calling err's Unwrap method, if it has
// one.
func Unwrap(err error) error { return errors.Unwrap(err) }

// A Message implements the error interface while retaining its format
// string and arguments for callers that want to localize or restructure
// the message later, rather than just print it.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef creates a Message for human consumption. The argument list
// should not be modified after the call.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns the unformatted message and its arguments.
func (m *Message) Msg() (string, []interface{}) { return m.format, m.args }

func (m *Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Error is the interface satisfied by errors that can identify which
// registration key they concern: the required specs, provided spec, and
// name of the entry being loaded or queried when the error occurred.
type Error interface {
	error
	// Path returns the key path associated with the error: for a whole
	// key, the required-spec names, then the provided-spec name, then the
	// registration name, in that order; for an error about one spec name,
	// just that name. It may be nil if the error isn't tied to a key.
	Path() []string
	// Msg returns the unformatted format string and its arguments.
	Msg() (format string, args []interface{})
}

// KeyError is the concrete Error used by registryfile and namedspec to
// report a problem with a specific key or spec name, such as an
// unresolvable spec name in a configuration document.
type KeyError struct {
	Message
	path []string
}

// NewKeyError creates a KeyError for the given key path.
func NewKeyError(path []string, format string, args ...interface{}) *KeyError {
	return &KeyError{Message: NewMessagef(format, args...), path: path}
}

func (e *KeyError) Path() []string { return e.path }

func (e *KeyError) Error() string {
	if len(e.path) == 0 {
		return e.Message.Error()
	}
	return fmt.Sprintf("%s: %s", e.path, e.Message.Error())
}
