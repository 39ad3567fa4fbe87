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

package legalize_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/legalize/ir"
	"github.com/gx-org/legalize/ir/irstring"
	"github.com/gx-org/legalize/legalize"
	"github.com/pkg/errors"
)

var f32 = ir.MustParseType("f32[4]")

func kinds(f *ir.Func) []ir.Kind {
	var ks []ir.Kind
	for op := range f.Ops() {
		ks = append(ks, op.Kind())
	}
	return ks
}

// chain builds a function applying operations of the given kinds one after the other.
func chain(t *testing.T, ks ...ir.Kind) *ir.Func {
	t.Helper()
	f := ir.NewFunc("main")
	v := f.AddArg(f32, "x")
	b := ir.NewBuilder(f)
	for i, kind := range ks {
		b.SetLoc(ir.Location(fmt.Sprintf("model.py:%d", i+1)))
		v = b.Create(kind, []*ir.Value{v}, []ir.Type{f32}).Result(0)
	}
	if err := f.SetReturns(v); err != nil {
		t.Fatal(err)
	}
	return f
}

func newDriver(t *testing.T, cfg legalize.Config) *legalize.Driver {
	t.Helper()
	if cfg.Target == nil {
		cfg.Target = legalize.NewTarget().AddLegalDialect("dst")
	}
	if cfg.Rules == nil {
		cfg.Rules = legalize.NewRuleSet()
	}
	cfg.Logger = testr.New(t)
	cfg.VerifyEachRewrite = true
	d, err := legalize.NewDriver(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func replaceWith(name string, src, dst ir.Kind) legalize.Rule {
	return legalize.NewRule(name, src, func(op *ir.Operation, rw *legalize.Rewriter) error {
		_, err := rw.ReplaceWithNew(op, dst, op.Operands())
		return err
	})
}

func never(name string, src ir.Kind) legalize.Rule {
	return legalize.NewRule(name, src, func(op *ir.Operation, rw *legalize.Rewriter) error {
		return legalize.NotApplicable("%s never applies", name)
	})
}

// partial emits an operation before discovering that it cannot complete.
func partial(name string, src ir.Kind) legalize.Rule {
	return legalize.NewRule(name, src, func(op *ir.Operation, rw *legalize.Rewriter) error {
		rw.Create("dst.Tmp", op.Operands(), op.ResultTypes())
		return legalize.PreconditionViolated("%s gave up", name)
	})
}

func checkValid(t *testing.T, f *ir.Func) {
	t.Helper()
	if err := f.Verify(); err != nil {
		t.Errorf("invalid function after conversion: %v", err)
	}
}

func TestLegalFunctionIsUntouched(t *testing.T) {
	f := chain(t, "dst.a", "dst.b")
	before := irstring.Func(f)
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(replaceWith("a", "src.a", "dst.a")),
	})
	res := d.ConvertFunc(f)
	if !res.Succeeded() {
		t.Fatalf("conversion failed: %v", res.Err())
	}
	if res.Rewrites != 0 || res.RuleInvocations != 0 {
		t.Errorf("got %d rewrites and %d rule invocations but want none", res.Rewrites, res.RuleInvocations)
	}
	if after := irstring.Func(f); after != before {
		t.Errorf("legal function modified:\n%s", cmp.Diff(before, after))
	}
	for op := range f.Ops() {
		if got := res.State(op); got != legalize.Converted {
			t.Errorf("%s: got state %s but want %s", op, got, legalize.Converted)
		}
	}
}

func TestConvert(t *testing.T) {
	f := chain(t, "src.neg", "dst.b")
	src := f.First()
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(replaceWith("neg", "src.neg", "dst.Neg")),
	})
	res := d.ConvertFunc(f)
	if !res.Succeeded() {
		t.Fatalf("conversion failed: %v", res.Err())
	}
	checkValid(t, f)
	if diff := cmp.Diff(kinds(f), []ir.Kind{"dst.Neg", "dst.b"}); diff != "" {
		t.Errorf("unexpected operations:\n%s", diff)
	}
	if res.Rewrites != 1 || res.RuleInvocations != 1 {
		t.Errorf("got %d rewrites and %d rule invocations but want 1 and 1", res.Rewrites, res.RuleInvocations)
	}
	newOp := f.First()
	if newOp.Loc() != "model.py:1" {
		t.Errorf("got location %q but want %q", newOp.Loc(), "model.py:1")
	}
	if newOp.Operand(0) != f.Args()[0] {
		t.Errorf("new operation does not use the function argument")
	}
	if newOp.Next().Operand(0) != newOp.Result(0) {
		t.Errorf("uses of the replaced result not rewired")
	}
	if src.Live() {
		t.Errorf("replaced operation %s still live", src)
	}
	if got := res.State(src); got != legalize.Dead {
		t.Errorf("replaced operation: got state %s but want %s", got, legalize.Dead)
	}
	if got := res.State(newOp); got != legalize.Converted {
		t.Errorf("new operation: got state %s but want %s", got, legalize.Converted)
	}
}

func TestRewireAllUses(t *testing.T) {
	f := ir.NewFunc("main")
	x := f.AddArg(f32, "x")
	b := ir.NewBuilder(f)
	src := b.Create("src.neg", []*ir.Value{x}, []ir.Type{f32})
	r := src.Result(0)
	b.Create("dst.add", []*ir.Value{r, r}, []ir.Type{f32})
	if err := f.SetReturns(r, x, r); err != nil {
		t.Fatal(err)
	}
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(replaceWith("neg", "src.neg", "dst.Neg")),
	})
	if err := d.ConvertFunc(f).Err(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, f)
	neg := f.First()
	if got := neg.Result(0).NumUses(); got != 4 {
		t.Errorf("got %d uses but want 4", got)
	}
	rets := f.Returns()
	if rets[0] != neg.Result(0) || rets[1] != x || rets[2] != neg.Result(0) {
		t.Errorf("returned values not rewired: %v", rets)
	}
}

func TestFallThrough(t *testing.T) {
	tests := []struct {
		name            string
		rules           []legalize.Rule
		wantInvocations int
	}{
		{
			name:            "NotApplicable",
			rules:           []legalize.Rule{never("first", "src.neg"), replaceWith("second", "src.neg", "dst.Neg")},
			wantInvocations: 2,
		},
		{
			name:            "PreconditionViolated",
			rules:           []legalize.Rule{partial("first", "src.neg"), replaceWith("second", "src.neg", "dst.Neg")},
			wantInvocations: 2,
		},
		{
			name:            "FirstWins",
			rules:           []legalize.Rule{replaceWith("first", "src.neg", "dst.Neg"), replaceWith("second", "src.neg", "dst.Other")},
			wantInvocations: 1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := chain(t, "src.neg", "dst.b")
			d := newDriver(t, legalize.Config{Rules: legalize.NewRuleSet(test.rules...)})
			res := d.ConvertFunc(f)
			if !res.Succeeded() {
				t.Fatalf("conversion failed: %v", res.Err())
			}
			checkValid(t, f)
			if diff := cmp.Diff(kinds(f), []ir.Kind{"dst.Neg", "dst.b"}); diff != "" {
				t.Errorf("unexpected operations:\n%s", diff)
			}
			if res.Rewrites != 1 {
				t.Errorf("got %d rewrites but want 1", res.Rewrites)
			}
			if res.RuleInvocations != test.wantInvocations {
				t.Errorf("got %d rule invocations but want %d", res.RuleInvocations, test.wantInvocations)
			}
		})
	}
}

func TestFailureLeavesFunctionUnchanged(t *testing.T) {
	f := chain(t, "dst.a", "src.neg", "dst.b")
	before := irstring.Func(f)
	var events []legalize.Event
	var rules []string
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(partial("partial", "src.neg"), never("never", "src.neg")),
		OnDiagnostic: func(diag legalize.Diagnostic) {
			events = append(events, diag.Event)
			if diag.Event == legalize.RuleRejected {
				rules = append(rules, diag.Rule)
			}
			if diag.Func != "main" {
				t.Errorf("got function %q in diagnostic but want %q", diag.Func, "main")
			}
		},
	})
	res := d.ConvertFunc(f)
	if res.Succeeded() {
		t.Fatalf("conversion succeeded but want a failure")
	}
	checkValid(t, f)
	if after := irstring.Func(f); after != before {
		t.Errorf("function modified by rejected rules:\n%s", cmp.Diff(before, after))
	}
	if len(res.Failures) != 1 {
		t.Fatalf("got %d failures but want 1", len(res.Failures))
	}
	failure := res.Failures[0]
	if !errors.Is(failure, legalize.ErrUnlegalizable) {
		t.Errorf("got error %v but want %v", failure, legalize.ErrUnlegalizable)
	}
	if failure.Kind != "src.neg" || failure.Loc != "model.py:2" || failure.Op != f.First().Next() {
		t.Errorf("failure attributed to %s at %s but want src.neg at model.py:2", failure.Kind, failure.Loc)
	}
	if res.State(failure.Op) != legalize.InProgress {
		t.Errorf("got state %s but want %s", res.State(failure.Op), legalize.InProgress)
	}
	if !errors.Is(res.Err(), legalize.ErrUnlegalizable) {
		t.Errorf("got error %v but want %v", res.Err(), legalize.ErrUnlegalizable)
	}
	wantMsg := "func main: model.py:2: src.neg:"
	if msg := res.Err().Error(); !strings.HasPrefix(msg, wantMsg) || !strings.Contains(msg, "rule never: never never applies") {
		t.Errorf("unexpected error message %q", msg)
	}
	if diff := cmp.Diff(res.BlockingKinds(), []ir.Kind{"src.neg"}); diff != "" {
		t.Errorf("unexpected blocking kinds:\n%s", diff)
	}
	wantEvents := []legalize.Event{legalize.RuleRejected, legalize.RuleRejected, legalize.OperationFailed, legalize.FunctionFailed}
	if diff := cmp.Diff(events, wantEvents); diff != "" {
		t.Errorf("unexpected diagnostics:\n%s", diff)
	}
	if diff := cmp.Diff(rules, []string{"partial", "never"}); diff != "" {
		t.Errorf("unexpected rejected rules:\n%s", diff)
	}
	if res.RuleInvocations != 2 || res.Rewrites != 0 {
		t.Errorf("got %d rule invocations and %d rewrites but want 2 and 0", res.RuleInvocations, res.Rewrites)
	}
}

func TestNoRule(t *testing.T) {
	f := chain(t, "src.unknown")
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(replaceWith("neg", "src.neg", "dst.Neg")),
	})
	res := d.ConvertFunc(f)
	if len(res.Failures) != 1 {
		t.Fatalf("got %d failures but want 1", len(res.Failures))
	}
	err := res.Failures[0]
	if !errors.Is(err, legalize.ErrUnlegalizable) || !strings.Contains(err.Error(), "no rule registered for src.unknown") {
		t.Errorf("unexpected error: %v", err)
	}
	if res.RuleInvocations != 0 {
		t.Errorf("got %d rule invocations but want 0", res.RuleInvocations)
	}
}

func TestMalformedReplacement(t *testing.T) {
	tests := []struct {
		name    string
		rewrite func(op *ir.Operation, rw *legalize.Rewriter) error
	}{
		{
			name: "WrongType",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				newOp := rw.Create("dst.Neg", op.Operands(), []ir.Type{ir.MustParseType("f32[2]")})
				return rw.Replace(op, newOp.Result(0))
			},
		},
		{
			name: "NoReplacement",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				rw.Create("dst.Neg", op.Operands(), op.ResultTypes())
				return nil
			},
		},
		{
			name: "MissingValue",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				return rw.Replace(op)
			},
		},
		{
			name: "NilValue",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				return rw.Replace(op, nil)
			},
		},
		{
			name: "OwnResult",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				return rw.Replace(op, op.Result(0))
			},
		},
		{
			name: "UsedByReplacement",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				newOp := rw.Create("dst.Neg", []*ir.Value{op.Result(0)}, op.ResultTypes())
				return rw.Replace(op, newOp.Result(0))
			},
		},
		{
			name: "CreatedUserOfResult",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				rw.Create("dst.User", []*ir.Value{op.Result(0)}, op.ResultTypes())
				def := rw.Create("dst.Def", op.Operands(), op.ResultTypes())
				return rw.Replace(op, def.Result(0))
			},
		},
		{
			name: "DefinedAfter",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				return rw.Replace(op, op.Next().Next().Result(0))
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := chain(t, "src.neg", "dst.b", "dst.c")
			before := irstring.Func(f)
			d := newDriver(t, legalize.Config{
				Rules: legalize.NewRuleSet(
					legalize.NewRule("bad", "src.neg", test.rewrite),
					replaceWith("unreached", "src.neg", "dst.Neg"),
				),
			})
			res := d.ConvertFunc(f)
			if len(res.Failures) != 1 {
				t.Fatalf("got %d failures but want 1", len(res.Failures))
			}
			if err := res.Failures[0]; !errors.Is(err, legalize.ErrMalformedReplacement) {
				t.Errorf("got error %v but want %v", err, legalize.ErrMalformedReplacement)
			}
			checkValid(t, f)
			if after := irstring.Func(f); after != before {
				t.Errorf("function modified by a malformed rewrite:\n%s", cmp.Diff(before, after))
			}
			if res.Rewrites != 0 || res.RuleInvocations != 1 {
				t.Errorf("got %d rewrites and %d rule invocations but want 0 and 1", res.Rewrites, res.RuleInvocations)
			}
		})
	}
}

func TestCreatedUserOfResultWithoutVerification(t *testing.T) {
	f := chain(t, "src.neg", "dst.b")
	before := irstring.Func(f)
	d, err := legalize.NewDriver(legalize.Config{
		Target: legalize.NewTarget().AddLegalDialect("dst"),
		Rules: legalize.NewRuleSet(legalize.NewRule("forward", "src.neg", func(op *ir.Operation, rw *legalize.Rewriter) error {
			rw.Create("dst.User", []*ir.Value{op.Result(0)}, op.ResultTypes())
			def := rw.Create("dst.Def", op.Operands(), op.ResultTypes())
			return rw.Replace(op, def.Result(0))
		})),
		Logger: testr.New(t),
	})
	if err != nil {
		t.Fatal(err)
	}
	res := d.ConvertFunc(f)
	if res.Succeeded() {
		t.Fatalf("conversion succeeded but want a malformed replacement failure")
	}
	if err := res.Err(); !errors.Is(err, legalize.ErrMalformedReplacement) {
		t.Errorf("got error %v but want %v", err, legalize.ErrMalformedReplacement)
	}
	checkValid(t, f)
	if after := irstring.Func(f); after != before {
		t.Errorf("function modified by a malformed rewrite:\n%s", cmp.Diff(before, after))
	}
}

func TestRuleFailure(t *testing.T) {
	tests := []struct {
		name    string
		rewrite func(op *ir.Operation, rw *legalize.Rewriter) error
		want    string
	}{
		{
			name: "Error",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				rw.Create("dst.Tmp", op.Operands(), op.ResultTypes())
				return errors.New("boom")
			},
			want: "rule bad failed: boom",
		},
		{
			name: "Panic",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				rw.Create("dst.Tmp", op.Operands(), op.ResultTypes())
				panic("boom")
			},
			want: "rule bad panicked: boom",
		},
		{
			name: "ReplaceOther",
			rewrite: func(op *ir.Operation, rw *legalize.Rewriter) error {
				return rw.Replace(op.Next(), op.Operand(0))
			},
			want: "only the matched operation",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := chain(t, "src.neg", "dst.b")
			before := irstring.Func(f)
			d := newDriver(t, legalize.Config{
				Rules: legalize.NewRuleSet(legalize.NewRule("bad", "src.neg", test.rewrite)),
			})
			res := d.ConvertFunc(f)
			if len(res.Failures) != 1 {
				t.Fatalf("got %d failures but want 1", len(res.Failures))
			}
			err := res.Failures[0]
			if !errors.Is(err, legalize.ErrUnlegalizable) {
				t.Errorf("got error %v but want %v", err, legalize.ErrUnlegalizable)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not contain %q", err.Error(), test.want)
			}
			checkValid(t, f)
			if after := irstring.Func(f); after != before {
				t.Errorf("function modified by a failed rule:\n%s", cmp.Diff(before, after))
			}
		})
	}
}

func TestChainedRewrites(t *testing.T) {
	f := chain(t, "src.a")
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(
			replaceWith("a", "src.a", "src.b"),
			replaceWith("b", "src.b", "dst.B"),
		),
	})
	res := d.ConvertFunc(f)
	if !res.Succeeded() {
		t.Fatalf("conversion failed: %v", res.Err())
	}
	checkValid(t, f)
	if diff := cmp.Diff(kinds(f), []ir.Kind{"dst.B"}); diff != "" {
		t.Errorf("unexpected operations:\n%s", diff)
	}
	if res.Rewrites != 2 || res.RuleInvocations != 2 {
		t.Errorf("got %d rewrites and %d rule invocations but want 2 and 2", res.Rewrites, res.RuleInvocations)
	}
}

func TestRewriterCreate(t *testing.T) {
	f := chain(t, "dst.a", "src.pair", "dst.b")
	var created []*ir.Operation
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(legalize.NewRule("pair", "src.pair", func(op *ir.Operation, rw *legalize.Rewriter) error {
			if rw.Matched() != op || rw.Func() != op.Func() {
				return errors.Errorf("unexpected rewriter state")
			}
			first := rw.Create("dst.First", op.Operands(), op.ResultTypes())
			second := rw.Create("dst.Second", first.Results(), op.ResultTypes())
			created = rw.Created()
			return rw.Replace(op, second.Result(0))
		})),
	})
	if err := d.ConvertFunc(f).Err(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, f)
	if diff := cmp.Diff(kinds(f), []ir.Kind{"dst.a", "dst.First", "dst.Second", "dst.b"}); diff != "" {
		t.Errorf("unexpected operations:\n%s", diff)
	}
	if len(created) != 2 {
		t.Fatalf("got %d created operations but want 2", len(created))
	}
	for _, op := range created {
		if op.Loc() != "model.py:2" {
			t.Errorf("%s: got location %q but want %q", op, op.Loc(), "model.py:2")
		}
	}
}

func TestMultipleResults(t *testing.T) {
	f := ir.NewFunc("main")
	x := f.AddArg(f32, "x")
	b := ir.NewBuilder(f)
	split := b.Create("src.split", []*ir.Value{x}, []ir.Type{f32, ir.MustParseType("i64[]")})
	if err := f.SetReturns(split.Result(1), split.Result(0)); err != nil {
		t.Fatal(err)
	}
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(legalize.NewRule("split", "src.split", func(op *ir.Operation, rw *legalize.Rewriter) error {
			lo := rw.Create("dst.Lo", op.Operands(), op.ResultTypes()[:1])
			hi := rw.Create("dst.Hi", op.Operands(), op.ResultTypes()[1:])
			return rw.Replace(op, lo.Result(0), hi.Result(0))
		})),
	})
	if err := d.ConvertFunc(f).Err(); err != nil {
		t.Fatal(err)
	}
	checkValid(t, f)
	rets := f.Returns()
	if rets[0].Def().Kind() != "dst.Hi" || rets[1].Def().Kind() != "dst.Lo" {
		t.Errorf("unexpected returned values: %v", rets)
	}
}

func TestRewriteBudget(t *testing.T) {
	f := chain(t, "src.loop")
	d := newDriver(t, legalize.Config{
		Rules:       legalize.NewRuleSet(replaceWith("loop", "src.loop", "src.loop")),
		MaxRewrites: 5,
	})
	res := d.ConvertFunc(f)
	if len(res.Failures) != 1 {
		t.Fatalf("got %d failures but want 1", len(res.Failures))
	}
	err := res.Failures[0]
	if !errors.Is(err, legalize.ErrRewriteBudget) || !errors.Is(err, legalize.ErrUnlegalizable) {
		t.Errorf("got error %v but want %v", err, legalize.ErrRewriteBudget)
	}
	if res.Rewrites != 5 || res.RuleInvocations != 5 {
		t.Errorf("got %d rewrites and %d rule invocations but want 5 and 5", res.Rewrites, res.RuleInvocations)
	}
	checkValid(t, f)
}

func TestFailFast(t *testing.T) {
	tests := []struct {
		failFast     bool
		wantFailures int
		wantLast     legalize.State
	}{
		{failFast: false, wantFailures: 2, wantLast: legalize.InProgress},
		{failFast: true, wantFailures: 1, wantLast: legalize.Pending},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("FailFast=%v", test.failFast), func(t *testing.T) {
			f := chain(t, "src.x", "src.y")
			d := newDriver(t, legalize.Config{FailFast: test.failFast})
			res := d.ConvertFunc(f)
			if len(res.Failures) != test.wantFailures {
				t.Errorf("got %d failures but want %d", len(res.Failures), test.wantFailures)
			}
			last := f.First().Next()
			if got := res.State(last); got != test.wantLast {
				t.Errorf("got state %s but want %s", got, test.wantLast)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	f := chain(t, "src.neg", "src.neg")
	d := newDriver(t, legalize.Config{
		Rules: legalize.NewRuleSet(replaceWith("neg", "src.neg", "dst.Neg")),
	})
	if err := d.ConvertFunc(f).Err(); err != nil {
		t.Fatal(err)
	}
	before := irstring.Func(f)
	res := d.ConvertFunc(f)
	if !res.Succeeded() {
		t.Fatalf("second conversion failed: %v", res.Err())
	}
	if res.Rewrites != 0 || res.RuleInvocations != 0 {
		t.Errorf("got %d rewrites and %d rule invocations but want none", res.Rewrites, res.RuleInvocations)
	}
	if after := irstring.Func(f); after != before {
		t.Errorf("converted function modified:\n%s", cmp.Diff(before, after))
	}
}

func TestNewDriverErrors(t *testing.T) {
	target := legalize.NewTarget()
	rules := legalize.NewRuleSet()
	tests := []struct {
		name string
		cfg  legalize.Config
		want string
	}{
		{name: "NoTarget", cfg: legalize.Config{Rules: rules}, want: "no target"},
		{name: "NoRules", cfg: legalize.Config{Target: target}, want: "no rule set"},
		{name: "NegativeBudget", cfg: legalize.Config{Target: target, Rules: rules, MaxRewrites: -1}, want: "invalid rewrite budget"},
	}
	for _, test := range tests {
		_, err := legalize.NewDriver(test.cfg)
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got error %v but want an error containing %q", test.name, err, test.want)
		}
	}
	d, err := legalize.NewDriver(legalize.Config{Target: target, Rules: rules})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Config().MaxRewrites; got != legalize.DefaultMaxRewrites {
		t.Errorf("got rewrite budget %d but want %d", got, legalize.DefaultMaxRewrites)
	}
}
