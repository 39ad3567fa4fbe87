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

// Package std defines dialect-independent operations.
package std

import "github.com/gx-org/legalize/ir"

// Dialect is the name of the standard dialect.
const Dialect = "std"

// Kinds of standard operations.
const (
	Call     ir.Kind = "std.call"
	Constant ir.Kind = "std.constant"
)

// CalleeAttr is the name of the attribute storing the function called by a call.
const CalleeAttr = "callee"

// NewCall creates a call to a function.
func NewCall(c ir.Creator, callee string, args []*ir.Value, results []ir.Type) *ir.Operation {
	return c.Create(Call, args, results, ir.Named(CalleeAttr, ir.StringAttr(callee)))
}

// NewConstant creates a constant.
func NewConstant(c ir.Creator, value ir.DenseAttr) *ir.Operation {
	return c.Create(Constant, nil, []ir.Type{value.Type}, ir.Named("value", value))
}
