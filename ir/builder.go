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
	// Creator creates operations in a function.
	Creator interface {
		Create(kind Kind, operands []*Value, results []Type, attrs ...NamedAttr) *Operation
	}

	// Builder inserts new operations in a function at an insertion point.
	Builder struct {
		fn     *Func
		before *Operation
		loc    Location
	}
)

var _ Creator = (*Builder)(nil)

// NewBuilder returns a builder appending operations at the end of a function.
func NewBuilder(f *Func) *Builder {
	return &Builder{fn: f}
}

// Func returns the function in which operations are created.
func (b *Builder) Func() *Func {
	return b.fn
}

// SetInsertionPointBefore inserts the next operations before op.
func (b *Builder) SetInsertionPointBefore(op *Operation) {
	if op.fn != b.fn {
		panic(fmt.Sprintf("cannot insert before %s: operation is not live in func %s", op, b.fn.name))
	}
	b.before = op
}

// SetInsertionPointToEnd appends the next operations at the end of the function.
func (b *Builder) SetInsertionPointToEnd() {
	b.before = nil
}

// SetLoc sets the location of the next operations.
func (b *Builder) SetLoc(loc Location) {
	b.loc = loc
}

// Create a new operation at the insertion point.
// Create panics if an operand is not live in the function of the builder.
func (b *Builder) Create(kind Kind, operands []*Value, results []Type, attrs ...NamedAttr) *Operation {
	f := b.fn
	for i, operand := range operands {
		if operand == nil || operand.fn != f {
			panic(fmt.Sprintf("cannot create %s: operand %d is not live in func %s", kind, i, f.name))
		}
	}
	op := &Operation{
		id:       OpID(len(f.ops)),
		fn:       f,
		kind:     kind,
		operands: append([]*Value{}, operands...),
		attrs:    ordered.NewMap[string, Attribute](),
		loc:      b.loc,
	}
	f.ops = append(f.ops, op)
	for _, attr := range attrs {
		op.attrs.Store(attr.Name, cloneAttr(attr.Attr))
	}
	for i, operand := range op.operands {
		operand.addUse(Use{Op: op, Index: i})
	}
	op.results = make([]*Value, len(results))
	for i, typ := range results {
		op.results[i] = f.newValue(typ, op, i)
	}
	f.insert(op, b.before)
	return op
}
