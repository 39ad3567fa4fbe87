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
	"slices"
	"strconv"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/pkg/errors"
)

// Type of a value: an element data type and a shape.
// A type is either ranked, with a fixed list of axis lengths,
// or unranked.
type Type struct {
	shape.Shape
	// Unranked is true if the number of axes is not known.
	// AxisLengths is ignored for unranked types.
	Unranked bool
}

// TensorType returns a ranked type.
// A type with no axis is a scalar.
func TensorType(dt dtype.DataType, axes ...int) Type {
	return Type{Shape: shape.Shape{
		DType:       dt,
		AxisLengths: append([]int{}, axes...),
	}}
}

// UnrankedType returns a type with an unknown number of axes.
func UnrankedType(dt dtype.DataType) Type {
	return Type{Shape: shape.Shape{DType: dt}, Unranked: true}
}

// Rank returns the number of axes of the type or -1 if the type is unranked.
func (t Type) Rank() int {
	if t.Unranked {
		return -1
	}
	return len(t.AxisLengths)
}

// IsScalar returns true if the type is ranked and has no axis.
func (t Type) IsScalar() bool {
	return t.Rank() == 0
}

// Dims returns a copy of the axis lengths.
func (t Type) Dims() []int {
	if t.Unranked {
		return nil
	}
	return append([]int{}, t.AxisLengths...)
}

// NumElements returns the number of elements of a ranked type or -1 for an unranked type.
func (t Type) NumElements() int {
	if t.Unranked {
		return -1
	}
	n := 1
	for _, ax := range t.AxisLengths {
		n *= ax
	}
	return n
}

// WithDims returns a ranked type with the same data type and new axis lengths.
func (t Type) WithDims(axes ...int) Type {
	return TensorType(t.DType, axes...)
}

// Equal returns true if both types have the same data type and shape.
func (t Type) Equal(other Type) bool {
	if t.DType != other.DType || t.Unranked != other.Unranked {
		return false
	}
	if t.Unranked {
		return true
	}
	return slices.Equal(t.AxisLengths, other.AxisLengths)
}

// String representation of a type, for example f32[2,3].
func (t Type) String() string {
	if t.Unranked {
		return DataTypeName(t.DType) + "[*]"
	}
	axes := make([]string, len(t.AxisLengths))
	for i, ax := range t.AxisLengths {
		axes[i] = strconv.Itoa(ax)
	}
	return fmt.Sprintf("%s[%s]", DataTypeName(t.DType), strings.Join(axes, ","))
}

var dataTypeNames = []struct {
	dt   dtype.DataType
	name string
}{
	{dt: dtype.Bool, name: "bool"},
	{dt: dtype.Int32, name: "i32"},
	{dt: dtype.Int64, name: "i64"},
	{dt: dtype.Uint32, name: "u32"},
	{dt: dtype.Uint64, name: "u64"},
	{dt: dtype.Bfloat16, name: "bf16"},
	{dt: dtype.Float32, name: "f32"},
	{dt: dtype.Float64, name: "f64"},
}

// DataTypeName returns the short name of a data type used in the textual form of types.
func DataTypeName(dt dtype.DataType) string {
	for _, entry := range dataTypeNames {
		if entry.dt == dt {
			return entry.name
		}
	}
	return "invalid"
}

// ParseDataType returns the data type given its short name.
func ParseDataType(name string) (dtype.DataType, error) {
	for _, entry := range dataTypeNames {
		if entry.name == name {
			return entry.dt, nil
		}
	}
	return dtype.Invalid, errors.Errorf("unknown data type %q", name)
}

// IsFloat returns true if the data type is a floating point type.
func IsFloat(dt dtype.DataType) bool {
	return dt == dtype.Bfloat16 || dt == dtype.Float32 || dt == dtype.Float64
}

// IsInteger returns true if the data type is a signed or unsigned integer type.
func IsInteger(dt dtype.DataType) bool {
	switch dt {
	case dtype.Int32, dtype.Int64, dtype.Uint32, dtype.Uint64:
		return true
	}
	return false
}

// ParseType parses the textual form of a type: f32[2,3], f32[] or f32[*].
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open < 0 || !strings.HasSuffix(s, "]") {
		return Type{}, errors.Errorf("invalid type %q: missing axis lengths", s)
	}
	dt, err := ParseDataType(s[:open])
	if err != nil {
		return Type{}, errors.Wrapf(err, "invalid type %q", s)
	}
	axesS := strings.TrimSpace(s[open+1 : len(s)-1])
	switch axesS {
	case "*":
		return UnrankedType(dt), nil
	case "":
		return TensorType(dt), nil
	}
	var axes []int
	for _, axS := range strings.Split(axesS, ",") {
		ax, err := strconv.Atoi(strings.TrimSpace(axS))
		if err != nil {
			return Type{}, errors.Errorf("invalid type %q: invalid axis length %q", s, axS)
		}
		if ax < 0 {
			return Type{}, errors.Errorf("invalid type %q: negative axis length %d", s, ax)
		}
		axes = append(axes, ax)
	}
	return TensorType(dt, axes...), nil
}

// MustParseType parses a type and panics if the type is invalid.
// Used to declare types in tests and static tables.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}
