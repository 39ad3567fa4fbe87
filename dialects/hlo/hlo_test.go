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

package hlo_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/legalize/dialects/hlo"
	"github.com/gx-org/legalize/ir"
)

func TestSliceAttrs(t *testing.T) {
	f := ir.NewFunc("main")
	x := f.AddArg(ir.MustParseType("f32[4,3]"), "x")
	b := ir.NewBuilder(f)
	slice := hlo.NewSlice(b, x, ir.MustParseType("f32[4,2]"), []int64{0, 1}, []int64{4, 3}, []int64{1, 1})
	attrs, err := hlo.SliceAttrsOf(slice)
	if err != nil {
		t.Fatal(err)
	}
	want := hlo.SliceAttrs{
		Start:   ir.IntsAttr{0, 1},
		Limit:   ir.IntsAttr{4, 3},
		Strides: ir.IntsAttr{1, 1},
	}
	if diff := cmp.Diff(attrs, want); diff != "" {
		t.Errorf("unexpected attributes:\n%s", diff)
	}

	reshape := hlo.NewReshape(b, x, ir.MustParseType("f32[12]"))
	if _, err := hlo.SliceAttrsOf(reshape); err == nil || !strings.Contains(err.Error(), "is not a hlo.slice operation") {
		t.Errorf("got error %v but want a kind error", err)
	}
	missing := b.Create(hlo.Slice, []*ir.Value{x}, []ir.Type{x.Type()}, ir.Named(hlo.StartIndicesAttr, ir.IntsAttr{0, 0}))
	if _, err := hlo.SliceAttrsOf(missing); err == nil || !strings.Contains(err.Error(), `no attribute "limit_indices"`) {
		t.Errorf("got error %v but want a missing attribute error", err)
	}
}

func TestDirection(t *testing.T) {
	f := ir.NewFunc("main")
	x := f.AddArg(ir.MustParseType("f32[4]"), "x")
	b := ir.NewBuilder(f)
	cmpOp := hlo.NewCompare(b, x, x, ir.MustParseType("bool[4]"), hlo.LE)
	dir, err := hlo.DirectionOf(cmpOp)
	if err != nil {
		t.Fatal(err)
	}
	if dir != hlo.LE {
		t.Errorf("got direction %s but want %s", dir, hlo.LE)
	}
	bad := b.Create(hlo.Compare, []*ir.Value{x, x}, []ir.Type{ir.MustParseType("bool[4]")},
		ir.Named(hlo.ComparisonDirectionAttr, ir.IntAttr(1)))
	if _, err := hlo.DirectionOf(bad); err == nil {
		t.Errorf("got no error for a direction of the wrong type")
	}
}

func TestCheckArity(t *testing.T) {
	f := ir.NewFunc("main")
	x := f.AddArg(ir.MustParseType("f32[4]"), "x")
	b := ir.NewBuilder(f)
	f32 := []ir.Type{x.Type()}
	tests := []struct {
		op   *ir.Operation
		want string
	}{
		{op: hlo.NewDot(b, x, x, ir.MustParseType("f32[]"))},
		{op: b.Create(hlo.Negate, []*ir.Value{x}, f32)},
		{op: b.Create(hlo.Dot, []*ir.Value{x}, f32), want: "hlo.dot has 1 operand(s) but requires 2"},
		{op: b.Create(hlo.Abs, []*ir.Value{x}, nil), want: "hlo.abs has 0 result(s) but requires 1"},
		{op: b.Create("tf.Neg", []*ir.Value{x}, f32), want: "tf.Neg is not a hlo operation"},
	}
	for _, test := range tests {
		err := hlo.CheckArity(test.op)
		if test.want == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", test.op.Kind(), err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got error %v but want an error containing %q", test.op.Kind(), err, test.want)
		}
	}
}
