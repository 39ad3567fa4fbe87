// Copyright 2025 Google LLC
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

// Package fmterr provides helpers to build errors attached to a location
// in a program and to accumulate errors while processing a program.
package fmterr

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/pkg/errors"
)

type (
	// ErrorWithPos is an error attached to a location in a program.
	ErrorWithPos interface {
		error
		Pos() fmt.Stringer
		Err() error
	}

	errorWithPos struct {
		pos fmt.Stringer
		err error
	}
)

// Position adds location information to an error.
func Position(pos fmt.Stringer, err error) ErrorWithPos {
	return errorWithPos{pos: pos, err: err}
}

// Errorf returns a formatted error at a location.
func Errorf(pos fmt.Stringer, format string, a ...any) error {
	return Position(pos, errors.Errorf(format, a...))
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return fmt.Errorf("legalize internal error. This is a bug. Please report it. Error:\n%+v", err)
}

// Internalf returns a formatted internal error at a location.
func Internalf(pos fmt.Stringer, format string, a ...any) error {
	return Internal(Errorf(pos, format, a...))
}

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}

// Error returns a string description of the error.
func (err errorWithPos) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	if err.pos == nil {
		return err.err.Error()
	}
	loc := err.pos.String()
	if loc == "" {
		return err.err.Error()
	}
	return loc + ": " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
// With %+v, the stack trace recorded by the wrapped error is written
// after the message.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
		return
	case 's', 'v', 'w':
	default:
		return
	}
	io.WriteString(s, err.Error())
	if verb == 's' || !s.Flag('+') {
		return
	}
	var withStack interface{ StackTrace() errors.StackTrace }
	if errors.As(err.err, &withStack) {
		fmt.Fprintf(s, "\nError generated at:%+v\n", withStack.StackTrace())
	}
}

func (err errorWithPos) Pos() fmt.Stringer {
	return err.pos
}

func (err errorWithPos) Err() error {
	return err.err
}
