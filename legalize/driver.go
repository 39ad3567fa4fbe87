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
	"github.com/go-logr/logr"
	"github.com/gx-org/legalize/base/fmterr"
	"github.com/gx-org/legalize/ir"
	"github.com/pkg/errors"
)

// DefaultMaxRewrites is the rewrite budget of a function when none is configured.
const DefaultMaxRewrites = 10000

// Config of a conversion.
type Config struct {
	// Target declares the legal operations. Required.
	Target *Target
	// Rules used to rewrite illegal operations. Required.
	Rules *RuleSet
	// Logger receives structured diagnostics. Discarded if not set.
	Logger logr.Logger
	// OnDiagnostic is called for each diagnostic if not nil.
	// It can be called concurrently by ConvertModule.
	OnDiagnostic func(Diagnostic)
	// MaxRewrites bounds the number of rewrites in a function.
	// DefaultMaxRewrites is used if zero.
	MaxRewrites int
	// FailFast stops the conversion of a function at the first failure.
	// Otherwise, the driver keeps converting the remaining operations
	// to report all the failures.
	FailFast bool
	// VerifyEachRewrite verifies the function after each committed rewrite.
	VerifyEachRewrite bool
}

// Driver converts functions to a target.
// A driver is immutable and can convert different functions concurrently.
type Driver struct {
	cfg Config
}

// NewDriver returns a new conversion driver.
func NewDriver(cfg Config) (*Driver, error) {
	if cfg.Target == nil {
		return nil, errors.Errorf("cannot create a conversion driver: no target")
	}
	if cfg.Rules == nil {
		return nil, errors.Errorf("cannot create a conversion driver: no rule set")
	}
	if cfg.MaxRewrites < 0 {
		return nil, errors.Errorf("cannot create a conversion driver: invalid rewrite budget %d", cfg.MaxRewrites)
	}
	if cfg.MaxRewrites == 0 {
		cfg.MaxRewrites = DefaultMaxRewrites
	}
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}
	return &Driver{cfg: cfg}, nil
}

// Config returns the configuration of the driver.
func (d *Driver) Config() Config {
	return d.cfg
}

type conversion struct {
	cfg      *Config
	fn       *ir.Func
	log      logr.Logger
	worklist []*ir.Operation
	res      *Result
}

// ConvertFunc converts a function in place.
//
// Operations are visited in program order. Legal operations are kept as is.
// Each illegal operation is given to its rules in registration order until
// one applies. The operations created by the rule are then visited after
// the operations already in the worklist. The conversion fails if an illegal
// operation cannot be rewritten: the operation is left in the function,
// which remains valid, and the failure is recorded in the result.
func (d *Driver) ConvertFunc(f *ir.Func) *Result {
	c := &conversion{
		cfg: &d.cfg,
		fn:  f,
		log: d.cfg.Logger.WithValues("func", f.Name()),
		res: &Result{
			Func:   f,
			states: make(map[*ir.Operation]State),
		},
	}
	for op := range f.Ops() {
		c.enqueue(op)
	}
	c.log.V(1).Info("conversion started", "ops", len(c.worklist))
	c.drain()
	c.finish()
	return c.res
}

func (c *conversion) enqueue(op *ir.Operation) {
	c.res.states[op] = Pending
	c.worklist = append(c.worklist, op)
}

func (c *conversion) drain() {
	for len(c.worklist) > 0 {
		op := c.worklist[0]
		c.worklist = c.worklist[1:]
		if !op.Live() {
			c.res.states[op] = Dead
			continue
		}
		if c.res.states[op] != Pending {
			continue
		}
		if c.cfg.Target.IsLegal(op) {
			c.res.states[op] = Converted
			continue
		}
		c.res.states[op] = InProgress
		failure := c.legalize(op)
		if failure == nil {
			continue
		}
		c.fail(failure)
		if c.cfg.FailFast {
			return
		}
	}
}

// legalize tries all the rules of an operation until one applies.
func (c *conversion) legalize(op *ir.Operation) *Failure {
	rules := c.cfg.Rules.For(op.Kind())
	if len(rules) == 0 {
		return c.newFailure(op, errors.WithMessagef(ErrUnlegalizable, "no rule registered for %s", op.Kind()), nil)
	}
	var rejections []Rejection
	for _, rule := range rules {
		if c.res.Rewrites >= c.cfg.MaxRewrites {
			return c.newFailure(op, errors.WithMessagef(ErrRewriteBudget, "%d rewrites committed", c.res.Rewrites), rejections)
		}
		c.res.RuleInvocations++
		rw := newRewriter(op)
		err := apply(rule, op, rw)
		if err == nil {
			err = rw.checkReplacements()
			if err == nil {
				return c.commit(rule, op, rw)
			}
		}
		if rbErr := rw.rollback(); rbErr != nil {
			return c.newFailure(op, errors.WithMessage(ErrUnlegalizable, fmterr.Internal(rbErr).Error()), rejections)
		}
		switch {
		case isRejection(err):
			c.log.V(2).Info("rule rejected", "op", op.String(), "rule", rule.Name(), "reason", err.Error())
			rejections = append(rejections, Rejection{Rule: rule.Name(), Err: err})
		case errors.Is(err, ErrMalformedReplacement):
			return c.newFailure(op, errors.WithMessagef(err, "rule %s", rule.Name()), rejections)
		default:
			return c.newFailure(op, errors.WithMessagef(ErrUnlegalizable, "rule %s failed: %v", rule.Name(), err), rejections)
		}
	}
	return c.newFailure(op, errors.WithMessagef(ErrUnlegalizable, "%d rule(s) rejected %s", len(rules), op.Kind()), rejections)
}

// apply calls a rule. A panic in the rule is returned as an error.
func apply(rule Rule, op *ir.Operation, rw *Rewriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("rule %s panicked: %v", rule.Name(), r)
		}
	}()
	return rule.MatchAndRewrite(op, rw)
}

func (c *conversion) commit(rule Rule, op *ir.Operation, rw *Rewriter) *Failure {
	created := rw.Created()
	if err := rw.commit(); err != nil {
		return c.newFailure(op, errors.WithMessage(ErrUnlegalizable, fmterr.Internal(err).Error()), nil)
	}
	c.res.Rewrites++
	c.res.states[op] = Dead
	c.log.V(2).Info("rewrite committed", "op", op.String(), "rule", rule.Name(), "created", len(created))
	for _, newOp := range created {
		if newOp.Live() {
			c.enqueue(newOp)
		}
	}
	if !c.cfg.VerifyEachRewrite {
		return nil
	}
	if err := c.fn.Verify(); err != nil {
		return c.newFailure(op, errors.WithMessage(ErrUnlegalizable, fmterr.Internalf(op.Loc(), "invalid function after rule %s: %v", rule.Name(), err).Error()), nil)
	}
	return nil
}

func (c *conversion) newFailure(op *ir.Operation, err error, rejections []Rejection) *Failure {
	return &Failure{
		Func:       c.fn.Name(),
		Op:         op,
		Kind:       op.Kind(),
		Loc:        op.Loc(),
		Err:        err,
		Rejections: rejections,
	}
}

func (c *conversion) fail(f *Failure) {
	c.res.Failures = append(c.res.Failures, f)
	c.log.Info("cannot legalize operation", "op", f.Op.String(), "kind", string(f.Kind), "loc", string(f.Loc), "reason", f.Err.Error())
	for _, rej := range f.Rejections {
		c.report(Diagnostic{
			Event:  RuleRejected,
			Op:     f.Op,
			Kind:   f.Kind,
			Loc:    f.Loc,
			Rule:   rej.Rule,
			Reason: rej.Err,
		})
	}
	c.report(Diagnostic{
		Event:  OperationFailed,
		Op:     f.Op,
		Kind:   f.Kind,
		Loc:    f.Loc,
		Reason: f.Err,
	})
}

func (c *conversion) finish() {
	if c.res.Succeeded() {
		c.log.V(1).Info("conversion succeeded", "rewrites", c.res.Rewrites, "invocations", c.res.RuleInvocations)
		return
	}
	err := c.res.Err()
	c.log.Error(err, "conversion failed", "failures", len(c.res.Failures))
	c.report(Diagnostic{Event: FunctionFailed, Reason: err})
}

func (c *conversion) report(d Diagnostic) {
	if c.cfg.OnDiagnostic == nil {
		return
	}
	d.Func = c.fn.Name()
	c.cfg.OnDiagnostic(d)
}
