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
	"github.com/gx-org/legalize/dialects/hlo"
	"github.com/gx-org/legalize/dialects/tf"
	"github.com/gx-org/legalize/ir"
	"github.com/gx-org/legalize/legalize"
)

// dotToMatMul rewrites a dot product of tensors of rank 0, 1 or 2 into a
// matrix multiplication of rank-2 tensors.
//
// Operands of rank lower than 2 are reshaped by adding leading axes of
// length 1. A vector on the right-hand side becomes a row: the matrix
// multiplication transposes it to contract its only axis. The product
// is then reshaped to the type of the dot result.
type dotToMatMul struct{}

var _ legalize.Rule = dotToMatMul{}

func (dotToMatMul) SourceKind() ir.Kind {
	return hlo.Dot
}

func (dotToMatMul) Name() string {
	return "dot-to-matmul"
}

// asMatrix returns the axis lengths of a tensor of rank 0, 1 or 2
// viewed as a matrix.
func asMatrix(t ir.Type) []int {
	if t.IsScalar() {
		return []int{1, 1}
	}
	if t.Rank() == 1 {
		return []int{1, t.AxisLengths[0]}
	}
	return t.Dims()
}

func checkDotOperand(side string, t ir.Type) error {
	if t.Unranked {
		return legalize.NotApplicable("%s operand has unranked type %s", side, t)
	}
	if t.Rank() > 2 {
		return legalize.NotApplicable("%s operand of rank %d: only ranks up to 2 are supported", side, t.Rank())
	}
	return nil
}

func (dotToMatMul) MatchAndRewrite(op *ir.Operation, rw *legalize.Rewriter) error {
	lhs, rhs := op.Operand(0), op.Operand(1)
	lhsType, rhsType := lhs.Type(), rhs.Type()
	outType := op.Result(0).Type()
	if err := checkDotOperand("left", lhsType); err != nil {
		return err
	}
	if err := checkDotOperand("right", rhsType); err != nil {
		return err
	}
	if outType.Unranked {
		return legalize.NotApplicable("result has unranked type %s", outType)
	}
	if lhsType.DType != rhsType.DType {
		return legalize.NotApplicable("mismatched operand types %s and %s", lhsType, rhsType)
	}
	lhsDims, rhsDims := asMatrix(lhsType), asMatrix(rhsType)
	transposeB := rhsType.Rank() == 1
	contracted, rows, cols := rhsDims[0], lhsDims[0], rhsDims[1]
	if transposeB {
		contracted, cols = rhsDims[1], rhsDims[0]
	}
	if lhsDims[1] != contracted {
		return legalize.NotApplicable("cannot contract %s with %s", lhsType, rhsType)
	}

	a := reshapeToMatrix(rw, lhs, lhsDims)
	b := reshapeToMatrix(rw, rhs, rhsDims)
	prodType := outType.WithDims(rows, cols)
	if prodType.NumElements() != outType.NumElements() {
		return legalize.PreconditionViolated("product %s cannot be reshaped to %s", prodType, outType)
	}
	result := tf.NewMatMul(rw, a, b, prodType, false, transposeB).Result(0)
	if !prodType.Equal(outType) {
		result = hlo.NewReshape(rw, result, outType).Result(0)
	}
	return rw.Replace(op, result)
}

func reshapeToMatrix(rw *legalize.Rewriter, x *ir.Value, dims []int) *ir.Value {
	if x.Type().Rank() == 2 {
		return x
	}
	return hlo.NewReshape(rw, x, x.Type().WithDims(dims...)).Result(0)
}
