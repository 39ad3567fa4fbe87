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
	"github.com/pkg/errors"
)

type (
	// Attribute is an immutable constant attached to an operation.
	// Attributes are compared by value. Operations store and return
	// copies of their attributes.
	Attribute interface {
		Equal(Attribute) bool
		String() string
	}

	// IntsAttr is a one-dimensional array of integers.
	IntsAttr []int64

	// BoolAttr is a boolean flag.
	BoolAttr bool

	// IntAttr is a single integer.
	IntAttr int64

	// FloatAttr is a single floating point number.
	FloatAttr float64

	// StringAttr is a string, used for enumerations such as comparison directions.
	StringAttr string

	// DenseAttr is a constant tensor. Elements are stored in row-major order
	// in Ints for boolean and integer data types and in Floats for floating
	// point data types.
	DenseAttr struct {
		Type   Type
		Ints   []int64
		Floats []float64
	}

	// NamedAttr pairs an attribute with its name on an operation.
	NamedAttr struct {
		Name string
		Attr Attribute
	}
)

var (
	_ Attribute = IntsAttr(nil)
	_ Attribute = BoolAttr(false)
	_ Attribute = IntAttr(0)
	_ Attribute = FloatAttr(0)
	_ Attribute = StringAttr("")
	_ Attribute = DenseAttr{}
)

// Named returns a named attribute.
func Named(name string, attr Attribute) NamedAttr {
	return NamedAttr{Name: name, Attr: attr}
}

// Equal returns true if other is an array with the same elements.
func (a IntsAttr) Equal(other Attribute) bool {
	o, ok := other.(IntsAttr)
	return ok && slices.Equal(a, o)
}

// IsSplat returns true if the array is not empty and all its elements are equal.
func (a IntsAttr) IsSplat() bool {
	if len(a) == 0 {
		return false
	}
	for _, v := range a[1:] {
		if v != a[0] {
			return false
		}
	}
	return true
}

// SplatValue returns the repeated value of a splat array.
// The second value is false if the array is not a splat.
func (a IntsAttr) SplatValue() (int64, bool) {
	if !a.IsSplat() {
		return 0, false
	}
	return a[0], true
}

func (a IntsAttr) String() string {
	return "[" + joinInts(a) + "]"
}

// Equal returns true if other is the same flag.
func (a BoolAttr) Equal(other Attribute) bool {
	o, ok := other.(BoolAttr)
	return ok && a == o
}

func (a BoolAttr) String() string {
	return strconv.FormatBool(bool(a))
}

// Equal returns true if other is the same integer.
func (a IntAttr) Equal(other Attribute) bool {
	o, ok := other.(IntAttr)
	return ok && a == o
}

func (a IntAttr) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// Equal returns true if other is the same number.
func (a FloatAttr) Equal(other Attribute) bool {
	o, ok := other.(FloatAttr)
	return ok && a == o
}

func (a FloatAttr) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

// Equal returns true if other is the same string.
func (a StringAttr) Equal(other Attribute) bool {
	o, ok := other.(StringAttr)
	return ok && a == o
}

func (a StringAttr) String() string {
	return strconv.Quote(string(a))
}

// DenseInts returns a dense attribute with integer (or boolean) elements.
func DenseInts(typ Type, vals []int64) (DenseAttr, error) {
	if !IsInteger(typ.DType) && typ.DType != dtype.Bool {
		return DenseAttr{}, errors.Errorf("cannot store integers in a dense attribute of type %s", typ)
	}
	if err := checkNumElements(typ, len(vals)); err != nil {
		return DenseAttr{}, err
	}
	return DenseAttr{Type: typ, Ints: append([]int64{}, vals...)}, nil
}

// DenseFloats returns a dense attribute with floating point elements.
func DenseFloats(typ Type, vals []float64) (DenseAttr, error) {
	if !IsFloat(typ.DType) {
		return DenseAttr{}, errors.Errorf("cannot store floats in a dense attribute of type %s", typ)
	}
	if err := checkNumElements(typ, len(vals)); err != nil {
		return DenseAttr{}, err
	}
	return DenseAttr{Type: typ, Floats: append([]float64{}, vals...)}, nil
}

func checkNumElements(typ Type, n int) error {
	if typ.Unranked {
		return errors.Errorf("dense attribute cannot have an unranked type")
	}
	if want := typ.NumElements(); want != n {
		return errors.Errorf("dense attribute of type %s requires %d elements but got %d", typ, want, n)
	}
	return nil
}

// Equal returns true if other is a dense attribute with the same type and elements.
func (a DenseAttr) Equal(other Attribute) bool {
	o, ok := other.(DenseAttr)
	if !ok {
		return false
	}
	return a.Type.Equal(o.Type) && slices.Equal(a.Ints, o.Ints) && slices.Equal(a.Floats, o.Floats)
}

func (a DenseAttr) String() string {
	var vals string
	if IsFloat(a.Type.DType) {
		ss := make([]string, len(a.Floats))
		for i, f := range a.Floats {
			ss[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		vals = strings.Join(ss, ", ")
	} else {
		vals = joinInts(a.Ints)
	}
	return fmt.Sprintf("dense<%s: [%s]>", a.Type, vals)
}

func joinInts(vals []int64) string {
	ss := make([]string, len(vals))
	for i, v := range vals {
		ss[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(ss, ", ")
}

// cloneAttr returns a copy of the attributes backed by a slice so that
// callers cannot modify the attributes stored on an operation.
func cloneAttr(attr Attribute) Attribute {
	switch a := attr.(type) {
	case IntsAttr:
		return slices.Clone(a)
	case DenseAttr:
		typ := a.Type
		typ.AxisLengths = slices.Clone(typ.AxisLengths)
		return DenseAttr{Type: typ, Ints: slices.Clone(a.Ints), Floats: slices.Clone(a.Floats)}
	}
	return attr
}

// AttrOf returns the attribute of an operation given its name,
// checking that the attribute has the expected type.
func AttrOf[T Attribute](op *Operation, name string) (T, error) {
	var zero T
	attr, ok := op.Attr(name)
	if !ok {
		return zero, errors.Errorf("%s has no attribute %q", op.Kind(), name)
	}
	t, ok := attr.(T)
	if !ok {
		return zero, errors.Errorf("attribute %q of %s is a %T, not a %T", name, op.Kind(), attr, zero)
	}
	return t, nil
}
