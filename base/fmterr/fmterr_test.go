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

package fmterr_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gx-org/legalize/base/fmterr"
)

type loc string

func (l loc) String() string { return string(l) }

var errSentinel = errors.New("sentinel")

func TestErrorf(t *testing.T) {
	err := fmterr.Errorf(loc("main.yaml:3"), "unknown kind %q", "hlo.foo")
	if got, want := err.Error(), `main.yaml:3: unknown kind "hlo.foo"`; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	err = fmterr.Errorf(loc(""), "no location")
	if got, want := err.Error(), "no location"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestPositionUnwrap(t *testing.T) {
	err := fmterr.Position(loc("x"), errSentinel)
	if !errors.Is(err, errSentinel) {
		t.Errorf("errors.Is(%v, errSentinel) = false", err)
	}
	if got := fmt.Sprintf("%v", err); got != "x: sentinel" {
		t.Errorf("got %q but want %q", got, "x: sentinel")
	}
}

func TestErrorsContext(t *testing.T) {
	var errs fmterr.Errors
	if errs.ToError() != nil {
		t.Fatalf("empty set of errors is not nil")
	}
	errs.Append(errors.New("first"))
	errs.Push(fmterr.PrefixWith("func @%s: ", "main"))
	errs.Append(errSentinel)
	errs.Append(nil)
	errs.Pop()
	errs.Push(fmterr.PrefixWith("unused: "))
	errs.Pop()
	got := errs.Errors()
	if len(got) != 2 {
		t.Fatalf("got %d errors but want 2: %v", len(got), got)
	}
	if want := "func @main: sentinel"; got[1].Error() != want {
		t.Errorf("got %q but want %q", got[1].Error(), want)
	}
	if !errors.Is(errs.ToError(), errSentinel) {
		t.Errorf("sentinel error not found in %v", errs.ToError())
	}
	if lines := strings.Split(errs.Error(), "\n"); len(lines) != 2 {
		t.Errorf("got %d lines but want 2: %q", len(lines), errs.Error())
	}
}

func TestInternal(t *testing.T) {
	err := fmterr.Internalf(loc("f"), "arena slot %d is empty", 3)
	if !strings.Contains(err.Error(), "internal error") || !strings.Contains(err.Error(), "f: arena slot 3 is empty") {
		t.Errorf("unexpected internal error message: %q", err.Error())
	}
}

func TestFormat(t *testing.T) {
	err := fmterr.Errorf(loc("main.yaml:3"), "bad operand")
	if got, want := fmt.Sprintf("%s", err), "main.yaml:3: bad operand"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	if got, want := fmt.Sprintf("%q", err), `"main.yaml:3: bad operand"`; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	verbose := fmt.Sprintf("%+v", err)
	if !strings.HasPrefix(verbose, "main.yaml:3: bad operand\nError generated at:") {
		t.Errorf("no stack trace in %q", verbose)
	}
	if got := fmt.Sprintf("%+v", fmterr.Position(loc("x"), errSentinel)); got != "x: sentinel" {
		t.Errorf("got %q but want %q", got, "x: sentinel")
	}
}
