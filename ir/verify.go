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
	"github.com/gx-org/legalize/base/fmterr"
)

// Verify checks the structural invariants of a function:
// every operand refers to a live value defined earlier in the function or
// to an argument, returned values are live, and use lists match operand slots.
func (f *Func) Verify() error {
	var errs fmterr.Errors
	errs.Push(fmterr.PrefixWith("func %s: ", f.name))
	defined := make(map[*Value]bool)
	for _, arg := range f.args {
		defined[arg] = true
	}
	numOps := 0
	var prev *Operation
	for op := f.first; op != nil; op = op.next {
		numOps++
		f.verifyOp(&errs, op, prev, defined)
		prev = op
	}
	if prev != f.last {
		errs.Append(fmterr.Internalf(UnknownLoc, "last operation %v does not end the operation list", f.last))
	}
	if numOps != f.numOps {
		errs.Append(fmterr.Internalf(UnknownLoc, "%d operations in program order but %d recorded", numOps, f.numOps))
	}
	for i, ret := range f.returns {
		switch {
		case ret.fn != f:
			errs.Appendf(UnknownLoc, "returned value %d refers to a dead value %s", i, ret)
		case !defined[ret]:
			errs.Appendf(UnknownLoc, "returned value %d refers to %s which is not defined in the function", i, ret)
		case !hasUse(ret, Use{Index: i}):
			errs.Append(fmterr.Internalf(UnknownLoc, "return slot %d missing from the uses of %s", i, ret))
		}
	}
	for v := range defined {
		f.verifyUses(&errs, v)
	}
	errs.Pop()
	return errs.ToError()
}

func (f *Func) verifyOp(errs *fmterr.Errors, op, prev *Operation, defined map[*Value]bool) {
	if op.fn != f || f.Op(op.id) != op {
		errs.Append(fmterr.Internalf(op.loc, "operation %s in program order is not live", op))
	}
	if op.prev != prev {
		errs.Append(fmterr.Internalf(op.loc, "operation %s has an inconsistent predecessor", op))
	}
	for i, operand := range op.operands {
		switch {
		case operand == nil:
			errs.Appendf(op.loc, "%s: operand %d is nil", op, i)
		case operand.fn != f:
			errs.Appendf(op.loc, "%s: operand %d refers to a dead value %s", op, i, operand)
		case !defined[operand]:
			errs.Appendf(op.loc, "%s: operand %d refers to %s before its definition", op, i, operand)
		case !hasUse(operand, Use{Op: op, Index: i}):
			errs.Append(fmterr.Internalf(op.loc, "%s: operand %d missing from the uses of %s", op, i, operand))
		}
	}
	for i, res := range op.results {
		if res.def != op || res.index != i || res.fn != f {
			errs.Append(fmterr.Internalf(op.loc, "%s: result %d is not owned by the operation", op, i))
		}
		defined[res] = true
	}
}

func (f *Func) verifyUses(errs *fmterr.Errors, v *Value) {
	for _, use := range v.uses {
		if use.Op == nil {
			if use.Index >= len(f.returns) || f.returns[use.Index] != v {
				errs.Append(fmterr.Internalf(UnknownLoc, "%s has a stale use in return slot %d", v, use.Index))
			}
			continue
		}
		if use.Op.fn != f || use.Index >= len(use.Op.operands) || use.Op.operands[use.Index] != v {
			errs.Append(fmterr.Internalf(UnknownLoc, "%s has a stale use in operand %d of %s", v, use.Index, use.Op))
		}
	}
}

func hasUse(v *Value, want Use) bool {
	for _, use := range v.uses {
		if use == want {
			return true
		}
	}
	return false
}
