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

package uname_test

import (
	"testing"

	"github.com/gx-org/legalize/base/uname"
)

func TestName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{name: "a", want: "a"},
		{name: "a", want: "a_1"},
		{name: "a", want: "a_2"},
		{name: "b", want: "b"},
		{name: "b", want: "b_1"},
		{name: "c", want: "c"},
	}
	unames := uname.New()
	for i, test := range tests {
		got := unames.Name(test.name)
		if got != test.want {
			t.Errorf("test %d: for name %s, got %s but want %s", i, test.name, got, test.want)
		}
	}
}

func TestNameSkipsRegistered(t *testing.T) {
	unames := uname.New()
	unames.Register("x_1")
	unames.Name("x")
	if got, want := unames.Name("x"), "x_2"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
}

func TestRoot(t *testing.T) {
	unames := uname.New()
	for _, name := range []string{"1", "v2"} {
		unames.Register(name)
	}
	numbers := unames.Root("")
	values := unames.Root("v")
	tests := []struct {
		root *uname.Root
		want string
	}{
		{root: numbers, want: "0"},
		{root: numbers, want: "2"},
		{root: values, want: "v0"},
		{root: values, want: "v1"},
		{root: values, want: "v3"},
		{root: numbers, want: "3"},
	}
	for i, test := range tests {
		got := test.root.Next()
		if got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}
