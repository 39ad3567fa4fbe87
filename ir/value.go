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

package ir

import "fmt"

type (
	// ValueID identifies a value in the arena of its function.
	ValueID int

	// Value is the result of exactly one operation or an argument of a function.
	Value struct {
		id    ValueID
		fn    *Func
		typ   Type
		def   *Operation
		index int
		name  string
		uses  []Use
	}

	// Use is an operand slot referring to a value.
	// Op is nil if the value is returned by the function: Index is then
	// the position in the function results.
	Use struct {
		Op    *Operation
		Index int
	}
)

// ID of the value in its function.
func (v *Value) ID() ValueID {
	return v.id
}

// Type of the value.
func (v *Value) Type() Type {
	return v.typ
}

// Def returns the operation defining the value or nil if the value is an argument.
func (v *Value) Def() *Operation {
	return v.def
}

// IsArg returns true if the value is a function argument.
func (v *Value) IsArg() bool {
	return v.def == nil
}

// Index returns the position of the value in the results of its
// defining operation or in the arguments of its function.
func (v *Value) Index() int {
	return v.index
}

// Name returns the name hint of the value. The name is only used for printing.
func (v *Value) Name() string {
	return v.name
}

// SetName sets the name hint of the value.
func (v *Value) SetName(name string) {
	v.name = name
}

// Func returns the function owning the value or nil once the
// defining operation has been erased.
func (v *Value) Func() *Func {
	return v.fn
}

// Live returns true if the value is still owned by a function.
func (v *Value) Live() bool {
	return v.fn != nil
}

// NumUses returns the number of operand and return slots referring to the value.
func (v *Value) NumUses() int {
	return len(v.uses)
}

// Uses returns a copy of the slots referring to the value.
func (v *Value) Uses() []Use {
	return append([]Use{}, v.uses...)
}

func (v *Value) addUse(u Use) {
	v.uses = append(v.uses, u)
}

func (v *Value) removeUse(u Use) bool {
	for i, use := range v.uses {
		if use == u {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return true
		}
	}
	return false
}

// String returns a short identifier of the value for debugging.
func (v *Value) String() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%#%d", v.id)
}
