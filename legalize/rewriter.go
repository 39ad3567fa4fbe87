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

package legalize

import (
	"slices"

	"github.com/gx-org/legalize/ir"
	"github.com/pkg/errors"
)

// Rewriter gives a rule the only mutations it is allowed to perform:
// creating operations before the matched operation and declaring the
// values replacing the results of the matched operation.
//
// Changes are committed by the driver once the rule returns.
type Rewriter struct {
	fn      *ir.Func
	op      *ir.Operation
	builder *ir.Builder

	created      []*ir.Operation
	replacements []*ir.Value
	replaced     bool
}

var _ ir.Creator = (*Rewriter)(nil)

func newRewriter(op *ir.Operation) *Rewriter {
	b := ir.NewBuilder(op.Func())
	b.SetInsertionPointBefore(op)
	b.SetLoc(op.Loc())
	return &Rewriter{fn: op.Func(), op: op, builder: b}
}

// Func returns the function being converted.
func (rw *Rewriter) Func() *ir.Func {
	return rw.fn
}

// Matched returns the operation matched by the rule.
func (rw *Rewriter) Matched() *ir.Operation {
	return rw.op
}

// Create a new operation immediately before the matched operation.
// The new operation inherits the location of the matched operation.
func (rw *Rewriter) Create(kind ir.Kind, operands []*ir.Value, results []ir.Type, attrs ...ir.NamedAttr) *ir.Operation {
	op := rw.builder.Create(kind, operands, results, attrs...)
	rw.created = append(rw.created, op)
	return op
}

// Created returns the operations created so far, in creation order.
func (rw *Rewriter) Created() []*ir.Operation {
	return append([]*ir.Operation{}, rw.created...)
}

// Replace declares the values replacing the results of the matched operation.
// The values are checked by the driver once the rule returns.
func (rw *Rewriter) Replace(op *ir.Operation, vals ...*ir.Value) error {
	if op != rw.op {
		return errors.Errorf("cannot replace %s: only the matched operation %s can be replaced", op, rw.op)
	}
	if rw.replaced {
		return errors.Errorf("replacement of %s already declared", op)
	}
	rw.replacements = append([]*ir.Value{}, vals...)
	rw.replaced = true
	return nil
}

// ReplaceWithNew creates a new operation with the same result types as
// the matched operation and replaces the matched operation with it.
func (rw *Rewriter) ReplaceWithNew(op *ir.Operation, kind ir.Kind, operands []*ir.Value, attrs ...ir.NamedAttr) (*ir.Operation, error) {
	if op != rw.op {
		return nil, errors.Errorf("cannot replace %s: only the matched operation %s can be replaced", op, rw.op)
	}
	newOp := rw.Create(kind, operands, op.ResultTypes(), attrs...)
	return newOp, rw.Replace(op, newOp.Results()...)
}

// definedBefore returns true if a value is available at the matched operation.
func (rw *Rewriter) definedBefore(v *ir.Value) bool {
	if v.IsArg() {
		return true
	}
	def := v.Def()
	for prev := rw.op.Prev(); prev != nil; prev = prev.Prev() {
		if prev == def {
			return true
		}
	}
	return false
}

// checkReplacements returns an error wrapping ErrMalformedReplacement if
// committing the declared replacements would corrupt the function.
func (rw *Rewriter) checkReplacements() error {
	if !rw.replaced {
		return errors.WithMessagef(ErrMalformedReplacement, "no replacement declared for %s", rw.op)
	}
	results := rw.op.Results()
	for _, res := range results {
		for _, use := range res.Uses() {
			if use.Op != nil && slices.Contains(rw.created, use.Op) {
				return errors.WithMessagef(ErrMalformedReplacement, "created operation %s uses result %d of %s", use.Op, res.Index(), rw.op)
			}
		}
	}
	if len(rw.replacements) != len(results) {
		return errors.WithMessagef(ErrMalformedReplacement, "%d replacement value(s) declared for %d result(s) of %s", len(rw.replacements), len(results), rw.op)
	}
	for i, repl := range rw.replacements {
		if repl == nil {
			return errors.WithMessagef(ErrMalformedReplacement, "replacement of result %d of %s is nil", i, rw.op)
		}
		if repl.Def() == rw.op {
			return errors.WithMessagef(ErrMalformedReplacement, "result %d of %s replaced by a result of the same operation", i, rw.op)
		}
		if err := rw.fn.CheckReplacement(results[i], repl); err != nil {
			return errors.WithMessagef(ErrMalformedReplacement, "result %d of %s: %v", i, rw.op, err)
		}
		if !rw.definedBefore(repl) {
			return errors.WithMessagef(ErrMalformedReplacement, "replacement %s of result %d is not defined before %s", repl, i, rw.op)
		}
	}
	return nil
}

// commit rewires the uses of the matched operation results to their
// replacements and erases the matched operation.
// checkReplacements must have returned nil.
func (rw *Rewriter) commit() error {
	for i, res := range rw.op.Results() {
		if err := rw.fn.ReplaceAllUsesWith(res, rw.replacements[i]); err != nil {
			return err
		}
	}
	return rw.fn.Erase(rw.op)
}

// rollback erases all the operations created by the rule, newest first.
func (rw *Rewriter) rollback() error {
	for i := len(rw.created) - 1; i >= 0; i-- {
		op := rw.created[i]
		if !op.Live() {
			continue
		}
		if err := rw.fn.Erase(op); err != nil {
			return err
		}
	}
	rw.created = nil
	rw.replacements = nil
	rw.replaced = false
	return nil
}
