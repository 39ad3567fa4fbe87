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

// Package tf defines the operations of the TensorFlow dialect,
// the target of the legalization from HLO.
package tf

import (
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/legalize/ir"
)

// Dialect is the name of the TensorFlow dialect.
const Dialect = "tf"

// Kinds of TensorFlow operations.
const (
	MatMul    ir.Kind = "tf.MatMul"
	Slice     ir.Kind = "tf.Slice"
	Const     ir.Kind = "tf.Const"
	Reshape   ir.Kind = "tf.Reshape"
	Transpose ir.Kind = "tf.Transpose"
	Cast      ir.Kind = "tf.Cast"

	AddV2      ir.Kind = "tf.AddV2"
	Sub        ir.Kind = "tf.Sub"
	Mul        ir.Kind = "tf.Mul"
	Div        ir.Kind = "tf.Div"
	Maximum    ir.Kind = "tf.Maximum"
	Minimum    ir.Kind = "tf.Minimum"
	Pow        ir.Kind = "tf.Pow"
	LogicalAnd ir.Kind = "tf.LogicalAnd"
	LogicalOr  ir.Kind = "tf.LogicalOr"

	Abs        ir.Kind = "tf.Abs"
	Neg        ir.Kind = "tf.Neg"
	Exp        ir.Kind = "tf.Exp"
	Log        ir.Kind = "tf.Log"
	Sqrt       ir.Kind = "tf.Sqrt"
	Rsqrt      ir.Kind = "tf.Rsqrt"
	Tanh       ir.Kind = "tf.Tanh"
	Floor      ir.Kind = "tf.Floor"
	Ceil       ir.Kind = "tf.Ceil"
	Sign       ir.Kind = "tf.Sign"
	Cos        ir.Kind = "tf.Cos"
	Sin        ir.Kind = "tf.Sin"
	LogicalNot ir.Kind = "tf.LogicalNot"

	Equal        ir.Kind = "tf.Equal"
	NotEqual     ir.Kind = "tf.NotEqual"
	Less         ir.Kind = "tf.Less"
	LessEqual    ir.Kind = "tf.LessEqual"
	Greater      ir.Kind = "tf.Greater"
	GreaterEqual ir.Kind = "tf.GreaterEqual"
)

// Attribute names.
const (
	TransposeAAttr = "transpose_a"
	TransposeBAttr = "transpose_b"
	ValueAttr      = "value"
	TruncateAttr   = "Truncate"
)

// NewConst creates a constant.
func NewConst(c ir.Creator, value ir.DenseAttr) *ir.Operation {
	return c.Create(Const, nil, []ir.Type{value.Type}, ir.Named(ValueAttr, value))
}

// NewConstInts creates a one-dimensional i64 constant.
func NewConstInts(c ir.Creator, vals []int64) *ir.Operation {
	return NewConst(c, ir.DenseAttr{
		Type: ir.TensorType(dtype.Int64, len(vals)),
		Ints: append([]int64{}, vals...),
	})
}

// NewMatMul creates a matrix multiplication of two rank-2 tensors.
func NewMatMul(c ir.Creator, a, b *ir.Value, out ir.Type, transposeA, transposeB bool) *ir.Operation {
	return c.Create(MatMul, []*ir.Value{a, b}, []ir.Type{out},
		ir.Named(TransposeAAttr, ir.BoolAttr(transposeA)),
		ir.Named(TransposeBAttr, ir.BoolAttr(transposeB)),
	)
}

// NewSlice creates a contiguous slice given the start and size tensors.
func NewSlice(c ir.Creator, x, begin, size *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Slice, []*ir.Value{x, begin, size}, []ir.Type{out})
}

// NewReshape creates a reshape given a tensor holding the new shape.
func NewReshape(c ir.Creator, x, shape *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Reshape, []*ir.Value{x, shape}, []ir.Type{out})
}

// NewTranspose creates a transposition given a tensor holding the permutation.
func NewTranspose(c ir.Creator, x, perm *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Transpose, []*ir.Value{x, perm}, []ir.Type{out})
}

// NewCast creates an element type conversion.
func NewCast(c ir.Creator, x *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Cast, []*ir.Value{x}, []ir.Type{out}, ir.Named(TruncateAttr, ir.BoolAttr(false)))
}
