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
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/legalize/dialects/hlo"
	"github.com/gx-org/legalize/dialects/tf"
	"github.com/gx-org/legalize/ir"
	"github.com/gx-org/legalize/legalize"
)

type elementwise struct {
	src, dst ir.Kind
	// boolOnly restricts the rule to boolean operands.
	boolOnly bool
}

var binaryOps = []elementwise{
	{src: hlo.Add, dst: tf.AddV2},
	{src: hlo.Subtract, dst: tf.Sub},
	{src: hlo.Multiply, dst: tf.Mul},
	{src: hlo.Divide, dst: tf.Div},
	{src: hlo.Maximum, dst: tf.Maximum},
	{src: hlo.Minimum, dst: tf.Minimum},
	{src: hlo.Power, dst: tf.Pow},
	{src: hlo.And, dst: tf.LogicalAnd, boolOnly: true},
	{src: hlo.Or, dst: tf.LogicalOr, boolOnly: true},
}

var unaryOps = []elementwise{
	{src: hlo.Abs, dst: tf.Abs},
	{src: hlo.Negate, dst: tf.Neg},
	{src: hlo.Exponential, dst: tf.Exp},
	{src: hlo.Log, dst: tf.Log},
	{src: hlo.Sqrt, dst: tf.Sqrt},
	{src: hlo.Rsqrt, dst: tf.Rsqrt},
	{src: hlo.Tanh, dst: tf.Tanh},
	{src: hlo.Floor, dst: tf.Floor},
	{src: hlo.Ceil, dst: tf.Ceil},
	{src: hlo.Sign, dst: tf.Sign},
	{src: hlo.Cosine, dst: tf.Cos},
	{src: hlo.Sine, dst: tf.Sin},
	{src: hlo.Not, dst: tf.LogicalNot, boolOnly: true},
}

var compareOps = []struct {
	dir hlo.ComparisonDirection
	dst ir.Kind
}{
	{dir: hlo.EQ, dst: tf.Equal},
	{dir: hlo.NE, dst: tf.NotEqual},
	{dir: hlo.LT, dst: tf.Less},
	{dir: hlo.LE, dst: tf.LessEqual},
	{dir: hlo.GT, dst: tf.Greater},
	{dir: hlo.GE, dst: tf.GreaterEqual},
}

func ruleName(src, dst ir.Kind) string {
	return fmt.Sprintf("%s-to-%s", src.Name(), strings.ToLower(dst.Name()))
}

func checkBool(op *ir.Operation) error {
	for i, operand := range op.Operands() {
		if operand.Type().DType != dtype.Bool {
			return legalize.NotApplicable("operand %d of type %s is not a boolean", i, operand.Type())
		}
	}
	return nil
}

func (e elementwise) binaryRule() legalize.Rule {
	return legalize.NewRule(ruleName(e.src, e.dst), e.src, func(op *ir.Operation, rw *legalize.Rewriter) error {
		x, y := op.Operand(0), op.Operand(1)
		if !ir.BroadcastCompatible(x.Type(), y.Type()) {
			return legalize.NotApplicable("operands of type %s and %s cannot be broadcast", x.Type(), y.Type())
		}
		if e.boolOnly {
			if err := checkBool(op); err != nil {
				return err
			}
		}
		_, err := rw.ReplaceWithNew(op, e.dst, []*ir.Value{x, y})
		return err
	})
}

func (e elementwise) unaryRule() legalize.Rule {
	return legalize.NewRule(ruleName(e.src, e.dst), e.src, func(op *ir.Operation, rw *legalize.Rewriter) error {
		if e.boolOnly {
			if err := checkBool(op); err != nil {
				return err
			}
		}
		_, err := rw.ReplaceWithNew(op, e.dst, op.Operands())
		return err
	})
}

// compareRule returns a rule rewriting comparisons in one direction.
// Comparisons are dispatched to the rule of their direction by falling
// through the rules of the other directions.
func compareRule(dir hlo.ComparisonDirection, dst ir.Kind) legalize.Rule {
	name := fmt.Sprintf("compare-%s-to-%s", strings.ToLower(string(dir)), strings.ToLower(dst.Name()))
	return legalize.NewRule(name, hlo.Compare, func(op *ir.Operation, rw *legalize.Rewriter) error {
		got, err := hlo.DirectionOf(op)
		if err != nil {
			return legalize.NotApplicable("%v", err)
		}
		if got != dir {
			return legalize.NotApplicable("comparison direction %s is not %s", got, dir)
		}
		x, y := op.Operand(0), op.Operand(1)
		if !ir.BroadcastCompatible(x.Type(), y.Type()) {
			return legalize.NotApplicable("operands of type %s and %s cannot be broadcast", x.Type(), y.Type())
		}
		_, err = rw.ReplaceWithNew(op, dst, []*ir.Value{x, y})
		return err
	})
}

func elementwiseRules() []legalize.Rule {
	var rules []legalize.Rule
	for _, e := range binaryOps {
		rules = append(rules, e.binaryRule())
	}
	for _, e := range unaryOps {
		rules = append(rules, e.unaryRule())
	}
	for _, cmp := range compareOps {
		rules = append(rules, compareRule(cmp.dir, cmp.dst))
	}
	return rules
}
