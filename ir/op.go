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

import (
	"fmt"

	"github.com/gx-org/legalize/base/ordered"
)

type (
	// OpID identifies an operation in the arena of its function.
	OpID int

	// Operation is a node of the program. Operations are created with a
	// Builder and can only be modified through their function.
	Operation struct {
		id       OpID
		fn       *Func
		kind     Kind
		operands []*Value
		results  []*Value
		attrs    *ordered.Map[string, Attribute]
		loc      Location

		prev, next *Operation
	}
)

// ID of the operation in its function.
func (op *Operation) ID() OpID {
	return op.id
}

// Kind of the operation.
func (op *Operation) Kind() Kind {
	return op.kind
}

// Loc returns the location of the operation.
func (op *Operation) Loc() Location {
	return op.loc
}

// Func returns the function owning the operation or nil if the operation has been erased.
func (op *Operation) Func() *Func {
	return op.fn
}

// Live returns true if the operation has not been erased.
func (op *Operation) Live() bool {
	return op.fn != nil
}

// NumOperands returns the number of operands.
func (op *Operation) NumOperands() int {
	return len(op.operands)
}

// Operand returns the value used by the ith operand.
func (op *Operation) Operand(i int) *Value {
	return op.operands[i]
}

// Operands returns a copy of the operands.
func (op *Operation) Operands() []*Value {
	return append([]*Value{}, op.operands...)
}

// NumResults returns the number of results.
func (op *Operation) NumResults() int {
	return len(op.results)
}

// Result returns the ith value defined by the operation.
func (op *Operation) Result(i int) *Value {
	return op.results[i]
}

// Results returns a copy of the results.
func (op *Operation) Results() []*Value {
	return append([]*Value{}, op.results...)
}

// ResultTypes returns the types of the results.
func (op *Operation) ResultTypes() []Type {
	types := make([]Type, len(op.results))
	for i, res := range op.results {
		types[i] = res.typ
	}
	return types
}

// Attr returns an attribute given its name.
func (op *Operation) Attr(name string) (Attribute, bool) {
	attr, ok := op.attrs.Load(name)
	if !ok {
		return nil, false
	}
	return cloneAttr(attr), true
}

// Attrs returns an iterator over the attributes in declaration order.
func (op *Operation) Attrs() func(func(string, Attribute) bool) {
	return func(yield func(string, Attribute) bool) {
		for name, attr := range op.attrs.Iter() {
			if !yield(name, cloneAttr(attr)) {
				return
			}
		}
	}
}

// NumAttrs returns the number of attributes.
func (op *Operation) NumAttrs() int {
	return op.attrs.Size()
}

// Next returns the operation following this one in program order.
func (op *Operation) Next() *Operation {
	return op.next
}

// Prev returns the operation preceding this one in program order.
func (op *Operation) Prev() *Operation {
	return op.prev
}

// String returns a short description of the operation for diagnostics.
func (op *Operation) String() string {
	if op.loc == UnknownLoc {
		return fmt.Sprintf("%s#%d", op.kind, op.id)
	}
	return fmt.Sprintf("%s#%d@%s", op.kind, op.id, op.loc)
}
