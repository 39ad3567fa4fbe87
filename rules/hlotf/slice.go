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

// sliceToSlice rewrites a slice with unit strides into a contiguous slice
// given its start indices and its size along each axis.
type sliceToSlice struct{}

var _ legalize.Rule = sliceToSlice{}

func (sliceToSlice) SourceKind() ir.Kind {
	return hlo.Slice
}

func (sliceToSlice) Name() string {
	return "slice-to-slice"
}

func (sliceToSlice) MatchAndRewrite(op *ir.Operation, rw *legalize.Rewriter) error {
	attrs, err := hlo.SliceAttrsOf(op)
	if err != nil {
		return legalize.NotApplicable("%v", err)
	}
	if stride, ok := attrs.Strides.SplatValue(); !ok || stride != 1 {
		return legalize.NotApplicable("strides %s are not all 1", attrs.Strides)
	}
	x := op.Operand(0)
	rank := len(attrs.Strides)
	if len(attrs.Start) != rank || len(attrs.Limit) != rank {
		return legalize.NotApplicable("%d start and %d limit indices for %d strides", len(attrs.Start), len(attrs.Limit), rank)
	}
	if xRank := x.Type().Rank(); xRank >= 0 && xRank != rank {
		return legalize.NotApplicable("%d strides to slice %s", rank, x.Type())
	}

	start := tf.NewConstInts(rw, attrs.Start)
	sizes := make([]int64, rank)
	for i := range sizes {
		sizes[i] = attrs.Limit[i] - attrs.Start[i]
		if sizes[i] < 0 {
			return legalize.PreconditionViolated("limit %d lower than start %d on axis %d", attrs.Limit[i], attrs.Start[i], i)
		}
	}
	size := tf.NewConstInts(rw, sizes)
	slice := tf.NewSlice(rw, x, start.Result(0), size.Result(0), op.Result(0).Type())
	return rw.Replace(op, slice.Result(0))
}
