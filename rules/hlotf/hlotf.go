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

// Package hlotf provides the rules legalizing HLO operations to TensorFlow.
package hlotf

import (
	"github.com/go-logr/logr"
	"github.com/gx-org/legalize/dialects/hlo"
	"github.com/gx-org/legalize/dialects/std"
	"github.com/gx-org/legalize/dialects/tf"
	"github.com/gx-org/legalize/ir"
	"github.com/gx-org/legalize/legalize"
)

// arityChecked rejects operations with unexpected operands or results
// before running a rule.
type arityChecked struct {
	legalize.Rule
}

func (r arityChecked) MatchAndRewrite(op *ir.Operation, rw *legalize.Rewriter) error {
	if err := hlo.CheckArity(op); err != nil {
		return legalize.NotApplicable("%v", err)
	}
	return r.Rule.MatchAndRewrite(op, rw)
}

// Populate adds all the HLO to TensorFlow rules to a rule set.
func Populate(rs *legalize.RuleSet) *legalize.RuleSet {
	rules := []legalize.Rule{dotToMatMul{}, sliceToSlice{}}
	rules = append(rules, structuralRules()...)
	rules = append(rules, elementwiseRules()...)
	for _, rule := range rules {
		rs.Add(arityChecked{Rule: rule})
	}
	return rs
}

// Rules returns a new rule set with all the HLO to TensorFlow rules.
func Rules() *legalize.RuleSet {
	return Populate(legalize.NewRuleSet())
}

// Target returns the TensorFlow conversion target: all TensorFlow
// operations are legal as well as generic calls and constants.
func Target() *legalize.Target {
	return legalize.NewTarget().
		AddLegalDialect(tf.Dialect).
		AddLegalOp(std.Call, std.Constant)
}

// Config returns the configuration of a HLO to TensorFlow conversion.
func Config(logger logr.Logger) legalize.Config {
	return legalize.Config{
		Target: Target(),
		Rules:  Rules(),
		Logger: logger,
	}
}

// NewDriver returns a driver converting HLO functions to TensorFlow.
func NewDriver(logger logr.Logger) (*legalize.Driver, error) {
	return legalize.NewDriver(Config(logger))
}
