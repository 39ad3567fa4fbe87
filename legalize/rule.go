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

package legalize

import (
	"github.com/gx-org/legalize/base/ordered"
	"github.com/gx-org/legalize/ir"
)

type (
	// Rule rewrites operations of a single kind.
	//
	// MatchAndRewrite returns nil once it has emitted new operations with the
	// rewriter and declared the replacement of the operation results.
	// It returns an error wrapping ErrNotApplicable or ErrPreconditionViolated
	// if the operation cannot be rewritten by this rule; any other error is a
	// failure of the rule. A rule never modifies operations it did not create.
	//
	// Rules are shared by concurrent conversions and must be stateless.
	Rule interface {
		// SourceKind returns the kind of operations rewritten by the rule.
		SourceKind() ir.Kind
		// Name of the rule, used in diagnostics.
		Name() string
		// MatchAndRewrite rewrites an operation.
		MatchAndRewrite(op *ir.Operation, rw *Rewriter) error
	}

	funcRule struct {
		name string
		kind ir.Kind
		f    func(*ir.Operation, *Rewriter) error
	}
)

// NewRule returns a rule given a rewrite function.
func NewRule(name string, kind ir.Kind, f func(op *ir.Operation, rw *Rewriter) error) Rule {
	return funcRule{name: name, kind: kind, f: f}
}

func (r funcRule) SourceKind() ir.Kind {
	return r.kind
}

func (r funcRule) Name() string {
	return r.name
}

func (r funcRule) MatchAndRewrite(op *ir.Operation, rw *Rewriter) error {
	return r.f(op, rw)
}

// RuleSet indexes rules by the kind of operation they rewrite.
// Rules for the same kind are tried in registration order.
type RuleSet struct {
	byKind *ordered.Map[ir.Kind, []Rule]
	all    []Rule
}

// NewRuleSet returns a rule set given an initial list of rules.
func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{byKind: ordered.NewMap[ir.Kind, []Rule]()}
	rs.Add(rules...)
	return rs
}

// Add rules to the set.
func (rs *RuleSet) Add(rules ...Rule) *RuleSet {
	for _, rule := range rules {
		kind := rule.SourceKind()
		current, _ := rs.byKind.Load(kind)
		rs.byKind.Store(kind, append(current, rule))
		rs.all = append(rs.all, rule)
	}
	return rs
}

// For returns the rules rewriting a given kind of operation, in registration order.
func (rs *RuleSet) For(kind ir.Kind) []Rule {
	rules, _ := rs.byKind.Load(kind)
	return append([]Rule{}, rules...)
}

// Kinds returns the kinds of operations for which at least one rule is
// registered, in the order in which they were first registered.
func (rs *RuleSet) Kinds() []ir.Kind {
	return rs.byKind.Keys()
}

// All returns all the rules in registration order.
func (rs *RuleSet) All() []Rule {
	return append([]Rule{}, rs.all...)
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	return len(rs.all)
}
