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

// Package ir defines the intermediate representation rewritten by the
// legalization driver: operations from named dialects, the values they
// define and use, their types and attributes.
//
// A Func owns its operations and values in an arena addressed by stable
// IDs. Operations are kept in program order and every operand refers to
// a value defined earlier in the same function or to an argument.
package ir

import "strings"

type (
	// Kind is a dialect-qualified operation name, for example "hlo.dot".
	Kind string

	// Location is a provenance tag attached to operations for diagnostics.
	Location string
)

// UnknownLoc is the location of operations with no provenance.
const UnknownLoc Location = ""

// Dialect returns the dialect of the operation kind,
// that is the prefix before the first dot.
func (k Kind) Dialect() string {
	dialect, _, found := strings.Cut(string(k), ".")
	if !found {
		return ""
	}
	return dialect
}

// Name returns the name of the operation within its dialect.
func (k Kind) Name() string {
	_, name, found := strings.Cut(string(k), ".")
	if !found {
		return string(k)
	}
	return name
}

func (k Kind) String() string {
	return string(k)
}

// String returns the location as a string.
func (l Location) String() string {
	return string(l)
}
