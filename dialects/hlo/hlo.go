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

// Package hlo defines the operations of the HLO dialect, the source of
// the legalization to TensorFlow.
package hlo

import (
	"github.com/gx-org/legalize/ir"
	"github.com/pkg/errors"
)

// Dialect is the name of the HLO dialect.
const Dialect = "hlo"

// Kinds of HLO operations.
const (
	Dot       ir.Kind = "hlo.dot"
	Slice     ir.Kind = "hlo.slice"
	Reshape   ir.Kind = "hlo.reshape"
	Transpose ir.Kind = "hlo.transpose"
	Constant  ir.Kind = "hlo.constant"
	Convert   ir.Kind = "hlo.convert"
	Compare   ir.Kind = "hlo.compare"

	Add      ir.Kind = "hlo.add"
	Subtract ir.Kind = "hlo.subtract"
	Multiply ir.Kind = "hlo.multiply"
	Divide   ir.Kind = "hlo.divide"
	Maximum  ir.Kind = "hlo.maximum"
	Minimum  ir.Kind = "hlo.minimum"
	Power    ir.Kind = "hlo.power"
	And      ir.Kind = "hlo.and"
	Or       ir.Kind = "hlo.or"

	Abs         ir.Kind = "hlo.abs"
	Negate      ir.Kind = "hlo.negate"
	Exponential ir.Kind = "hlo.exponential"
	Log         ir.Kind = "hlo.log"
	Sqrt        ir.Kind = "hlo.sqrt"
	Rsqrt       ir.Kind = "hlo.rsqrt"
	Tanh        ir.Kind = "hlo.tanh"
	Floor       ir.Kind = "hlo.floor"
	Ceil        ir.Kind = "hlo.ceil"
	Sign        ir.Kind = "hlo.sign"
	Cosine      ir.Kind = "hlo.cosine"
	Sine        ir.Kind = "hlo.sine"
	Not         ir.Kind = "hlo.not"
)

// Attribute names.
const (
	StartIndicesAttr        = "start_indices"
	LimitIndicesAttr        = "limit_indices"
	StridesAttr             = "strides"
	PermutationAttr         = "permutation"
	ValueAttr               = "value"
	ComparisonDirectionAttr = "comparison_direction"
)

// ComparisonDirection of a compare operation.
type ComparisonDirection string

// Comparison directions.
const (
	EQ ComparisonDirection = "EQ"
	NE ComparisonDirection = "NE"
	LT ComparisonDirection = "LT"
	LE ComparisonDirection = "LE"
	GT ComparisonDirection = "GT"
	GE ComparisonDirection = "GE"
)

var numOperands = map[ir.Kind]int{
	Dot:       2,
	Slice:     1,
	Reshape:   1,
	Transpose: 1,
	Constant:  0,
	Convert:   1,
	Compare:   2,

	Add:      2,
	Subtract: 2,
	Multiply: 2,
	Divide:   2,
	Maximum:  2,
	Minimum:  2,
	Power:    2,
	And:      2,
	Or:       2,

	Abs:         1,
	Negate:      1,
	Exponential: 1,
	Log:         1,
	Sqrt:        1,
	Rsqrt:       1,
	Tanh:        1,
	Floor:       1,
	Ceil:        1,
	Sign:        1,
	Cosine:      1,
	Sine:        1,
	Not:         1,
}

// CheckArity returns an error if an operation does not have the number
// of operands of its kind or does not have exactly one result.
func CheckArity(op *ir.Operation) error {
	want, ok := numOperands[op.Kind()]
	if !ok {
		return errors.Errorf("%s is not a hlo operation", op.Kind())
	}
	if got := op.NumOperands(); got != want {
		return errors.Errorf("%s has %d operand(s) but requires %d", op.Kind(), got, want)
	}
	if got := op.NumResults(); got != 1 {
		return errors.Errorf("%s has %d result(s) but requires 1", op.Kind(), got)
	}
	return nil
}

// NewDot creates a dot product.
func NewDot(c ir.Creator, lhs, rhs *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Dot, []*ir.Value{lhs, rhs}, []ir.Type{out})
}

// NewSlice creates a strided slice.
func NewSlice(c ir.Creator, x *ir.Value, out ir.Type, start, limit, strides []int64) *ir.Operation {
	return c.Create(Slice, []*ir.Value{x}, []ir.Type{out},
		ir.Named(StartIndicesAttr, ir.IntsAttr(start)),
		ir.Named(LimitIndicesAttr, ir.IntsAttr(limit)),
		ir.Named(StridesAttr, ir.IntsAttr(strides)),
	)
}

// NewReshape creates a reshape of x to a type.
func NewReshape(c ir.Creator, x *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Reshape, []*ir.Value{x}, []ir.Type{out})
}

// NewTranspose creates a transposition.
func NewTranspose(c ir.Creator, x *ir.Value, out ir.Type, permutation []int64) *ir.Operation {
	return c.Create(Transpose, []*ir.Value{x}, []ir.Type{out}, ir.Named(PermutationAttr, ir.IntsAttr(permutation)))
}

// NewConstant creates a constant.
func NewConstant(c ir.Creator, value ir.DenseAttr) *ir.Operation {
	return c.Create(Constant, nil, []ir.Type{value.Type}, ir.Named(ValueAttr, value))
}

// NewConvert creates an element type conversion.
func NewConvert(c ir.Creator, x *ir.Value, out ir.Type) *ir.Operation {
	return c.Create(Convert, []*ir.Value{x}, []ir.Type{out})
}

// NewCompare creates an elementwise comparison.
func NewCompare(c ir.Creator, x, y *ir.Value, out ir.Type, dir ComparisonDirection) *ir.Operation {
	return c.Create(Compare, []*ir.Value{x, y}, []ir.Type{out}, ir.Named(ComparisonDirectionAttr, ir.StringAttr(dir)))
}

// SliceAttrs are the attributes of a slice operation.
type SliceAttrs struct {
	Start, Limit, Strides ir.IntsAttr
}

// SliceAttrsOf returns the attributes of a slice operation.
func SliceAttrsOf(op *ir.Operation) (SliceAttrs, error) {
	var attrs SliceAttrs
	if op.Kind() != Slice {
		return attrs, errors.Errorf("%s is not a %s operation", op, Slice)
	}
	var err error
	if attrs.Start, err = ir.AttrOf[ir.IntsAttr](op, StartIndicesAttr); err != nil {
		return attrs, err
	}
	if attrs.Limit, err = ir.AttrOf[ir.IntsAttr](op, LimitIndicesAttr); err != nil {
		return attrs, err
	}
	if attrs.Strides, err = ir.AttrOf[ir.IntsAttr](op, StridesAttr); err != nil {
		return attrs, err
	}
	return attrs, nil
}

// DirectionOf returns the comparison direction of a compare operation.
func DirectionOf(op *ir.Operation) (ComparisonDirection, error) {
	dir, err := ir.AttrOf[ir.StringAttr](op, ComparisonDirectionAttr)
	if err != nil {
		return "", err
	}
	return ComparisonDirection(dir), nil
}
