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
	"github.com/pkg/errors"
)

// Func is an ordered sequence of operations with arguments and returned values.
type Func struct {
	name string

	// Arena of operations and values. Slots are never reused:
	// IDs stay valid, erased entries are nil.
	ops    []*Operation
	values []*Value

	first, last *Operation
	numOps      int

	args    []*Value
	returns []*Value
}

// NewFunc returns an empty function.
func NewFunc(name string) *Func {
	return &Func{name: name}
}

// Name of the function.
func (f *Func) Name() string {
	return f.name
}

func (f *Func) newValue(typ Type, def *Operation, index int) *Value {
	v := &Value{
		id:    ValueID(len(f.values)),
		fn:    f,
		typ:   typ,
		def:   def,
		index: index,
	}
	f.values = append(f.values, v)
	return v
}

// AddArg appends an argument to the function.
func (f *Func) AddArg(typ Type, name string) *Value {
	v := f.newValue(typ, nil, len(f.args))
	v.name = name
	f.args = append(f.args, v)
	return v
}

// Args returns a copy of the function arguments.
func (f *Func) Args() []*Value {
	return append([]*Value{}, f.args...)
}

// SetReturns sets the values returned by the function.
func (f *Func) SetReturns(vals ...*Value) error {
	for i, v := range vals {
		if v == nil || v.fn != f {
			return errors.Errorf("func %s: returned value %d is not defined in the function", f.name, i)
		}
	}
	for i, v := range f.returns {
		v.removeUse(Use{Index: i})
	}
	f.returns = append([]*Value{}, vals...)
	for i, v := range f.returns {
		v.addUse(Use{Index: i})
	}
	return nil
}

// Returns returns a copy of the values returned by the function.
func (f *Func) Returns() []*Value {
	return append([]*Value{}, f.returns...)
}

// NumOps returns the number of live operations.
func (f *Func) NumOps() int {
	return f.numOps
}

// First returns the first operation in program order.
func (f *Func) First() *Operation {
	return f.first
}

// Ops returns an iterator over the live operations in program order.
// The operation being visited can be erased during the iteration.
func (f *Func) Ops() func(func(*Operation) bool) {
	return func(yield func(*Operation) bool) {
		for op := f.first; op != nil; {
			next := op.next
			if !yield(op) {
				return
			}
			op = next
		}
	}
}

// OpList returns the live operations in program order.
func (f *Func) OpList() []*Operation {
	ops := make([]*Operation, 0, f.numOps)
	for op := range f.Ops() {
		ops = append(ops, op)
	}
	return ops
}

// Op returns an operation given its ID or nil if the operation has been erased.
func (f *Func) Op(id OpID) *Operation {
	if int(id) < 0 || int(id) >= len(f.ops) {
		return nil
	}
	return f.ops[id]
}

// Value returns a value given its ID or nil if the value is not live.
func (f *Func) Value(id ValueID) *Value {
	if int(id) < 0 || int(id) >= len(f.values) {
		return nil
	}
	return f.values[id]
}

// insert links a new operation before another one or at the end of
// the function if before is nil.
func (f *Func) insert(op, before *Operation) {
	f.numOps++
	if before == nil {
		op.prev = f.last
		if f.last != nil {
			f.last.next = op
		} else {
			f.first = op
		}
		f.last = op
		return
	}
	op.next = before
	op.prev = before.prev
	if before.prev != nil {
		before.prev.next = op
	} else {
		f.first = op
	}
	before.prev = op
}

func (f *Func) unlink(op *Operation) {
	if op.prev != nil {
		op.prev.next = op.next
	} else {
		f.first = op.next
	}
	if op.next != nil {
		op.next.prev = op.prev
	} else {
		f.last = op.prev
	}
	op.prev, op.next = nil, nil
	f.numOps--
}

// CheckReplacement returns an error if all the uses of from cannot be
// replaced by to. ReplaceAllUsesWith never fails once CheckReplacement
// has returned nil.
func (f *Func) CheckReplacement(from, to *Value) error {
	switch {
	case from == nil || to == nil:
		return errors.Errorf("func %s: cannot replace a nil value", f.name)
	case from.fn != f:
		return errors.Errorf("func %s: replaced value %s is not live in the function", f.name, from)
	case to.fn != f:
		return errors.Errorf("func %s: replacement value %s is not live in the function", f.name, to)
	case !from.typ.Equal(to.typ):
		return errors.Errorf("func %s: cannot replace %s of type %s with %s of type %s", f.name, from, from.typ, to, to.typ)
	}
	if to.def == nil {
		return nil
	}
	for _, use := range from.uses {
		if use.Op == to.def {
			return errors.Errorf("func %s: replacement value %s would be used by its own defining operation %s", f.name, to, to.def)
		}
	}
	return nil
}

// ReplaceAllUsesWith rewires every operand and return slot referring to
// from so that it refers to to instead. Either all uses are rewired or,
// if the replacement is invalid, none are. from is left without uses and
// dies with its defining operation.
func (f *Func) ReplaceAllUsesWith(from, to *Value) error {
	if err := f.CheckReplacement(from, to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	for _, use := range from.uses {
		if use.Op == nil {
			f.returns[use.Index] = to
		} else {
			use.Op.operands[use.Index] = to
		}
		to.addUse(use)
	}
	from.uses = nil
	return nil
}

// Erase removes an operation from the function.
// None of the operation results can still be in use.
func (f *Func) Erase(op *Operation) error {
	if op.fn != f {
		return errors.Errorf("func %s: operation %s is not live in the function", f.name, op)
	}
	for _, res := range op.results {
		if len(res.uses) > 0 {
			return errors.Errorf("func %s: cannot erase %s: result %d still has %d use(s)", f.name, op, res.index, len(res.uses))
		}
	}
	for i, operand := range op.operands {
		operand.removeUse(Use{Op: op, Index: i})
	}
	for _, res := range op.results {
		f.values[res.id] = nil
		res.fn = nil
	}
	f.unlink(op)
	f.ops[op.id] = nil
	op.fn = nil
	return nil
}
