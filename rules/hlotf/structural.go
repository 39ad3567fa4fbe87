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

package hlotf

import (
	"slices"

	"github.com/gx-org/legalize/dialects/hlo"
	"github.com/gx-org/legalize/dialects/tf"
	"github.com/gx-org/legalize/ir"
	"github.com/gx-org/legalize/legalize"
)

func toInt64s(dims []int) []int64 {
	vals := make([]int64, len(dims))
	for i, dim := range dims {
		vals[i] = int64(dim)
	}
	return vals
}

func reshape(op *ir.Operation, rw *legalize.Rewriter) error {
	x, outType := op.Operand(0), op.Result(0).Type()
	if outType.Unranked {
		return legalize.NotApplicable("cannot reshape to unranked type %s", outType)
	}
	if xType := x.Type(); !xType.Unranked && xType.NumElements() != outType.NumElements() {
		return legalize.NotApplicable("cannot reshape %s to %s", xType, outType)
	}
	shape := tf.NewConstInts(rw, toInt64s(outType.Dims()))
	newOp := tf.NewReshape(rw, x, shape.Result(0), outType)
	return rw.Replace(op, newOp.Result(0))
}

func transpose(op *ir.Operation, rw *legalize.Rewriter) error {
	perm, err := ir.AttrOf[ir.IntsAttr](op, hlo.PermutationAttr)
	if err != nil {
		return legalize.NotApplicable("%v", err)
	}
	if rank := op.Operand(0).Type().Rank(); rank >= 0 && rank != len(perm) {
		return legalize.NotApplicable("permutation %s of a tensor of rank %d", perm, rank)
	}
	permOp := tf.NewConstInts(rw, perm)
	newOp := tf.NewTranspose(rw, op.Operand(0), permOp.Result(0), op.Result(0).Type())
	return rw.Replace(op, newOp.Result(0))
}

func constant(op *ir.Operation, rw *legalize.Rewriter) error {
	value, err := ir.AttrOf[ir.DenseAttr](op, hlo.ValueAttr)
	if err != nil {
		return legalize.NotApplicable("%v", err)
	}
	if outType := op.Result(0).Type(); !value.Type.Equal(outType) {
		return legalize.NotApplicable("constant of type %s defines a value of type %s", value.Type, outType)
	}
	return rw.Replace(op, tf.NewConst(rw, value).Result(0))
}

func convert(op *ir.Operation, rw *legalize.Rewriter) error {
	x, outType := op.Operand(0), op.Result(0).Type()
	if !x.Type().Unranked && !outType.Unranked && !slices.Equal(x.Type().AxisLengths, outType.AxisLengths) {
		return legalize.NotApplicable("cannot convert %s to %s", x.Type(), outType)
	}
	return rw.Replace(op, tf.NewCast(rw, x, outType).Result(0))
}

func structuralRules() []legalize.Rule {
	return []legalize.Rule{
		legalize.NewRule("reshape-to-reshape", hlo.Reshape, reshape),
		legalize.NewRule("transpose-to-transpose", hlo.Transpose, transpose),
		legalize.NewRule("constant-to-const", hlo.Constant, constant),
		legalize.NewRule("convert-to-cast", hlo.Convert, convert),
	}
}
