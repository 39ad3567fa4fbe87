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
	"fmt"
	"sort"
	"strings"

	"github.com/gx-org/legalize/ir"
	"go.uber.org/multierr"
)

// State of an operation during a conversion.
type State int

const (
	// Pending operations are waiting in the worklist.
	Pending State = iota
	// InProgress operations are being legalized. An operation remains in
	// that state if no rule could legalize it.
	InProgress
	// Converted operations are legal.
	Converted
	// Dead operations have been replaced and erased.
	Dead
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case InProgress:
		return "in-progress"
	case Converted:
		return "converted"
	case Dead:
		return "dead"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type (
	// Rejection records a rule that did not apply to an operation.
	Rejection struct {
		Rule string
		Err  error
	}

	// Failure records an operation that could not be legalized.
	Failure struct {
		// Func is the name of the function containing the operation.
		Func string
		// Op is the operation left in the function.
		Op   *ir.Operation
		Kind ir.Kind
		Loc  ir.Location
		// Err wraps ErrUnlegalizable or ErrMalformedReplacement.
		Err error
		// Rejections lists the rules tried before the failure, in order.
		Rejections []Rejection
	}
)

func (r Rejection) String() string {
	return fmt.Sprintf("rule %s: %v", r.Rule, r.Err)
}

// Error returns the failure message.
func (f *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s: ", f.Func)
	if f.Loc != ir.UnknownLoc {
		fmt.Fprintf(&b, "%s: ", f.Loc)
	}
	fmt.Fprintf(&b, "%s: %v", f.Kind, f.Err)
	if len(f.Rejections) > 0 {
		reasons := make([]string, len(f.Rejections))
		for i, rej := range f.Rejections {
			reasons[i] = rej.String()
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(reasons, "; "))
	}
	return b.String()
}

// Unwrap returns the cause of the failure.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Result of the conversion of a function.
type Result struct {
	// Func is the converted function.
	Func *ir.Func
	// Rewrites is the number of committed rewrites.
	Rewrites int
	// RuleInvocations counts the calls to MatchAndRewrite.
	RuleInvocations int
	// Failures lists the operations that could not be legalized,
	// in the order in which they failed.
	Failures []*Failure

	states map[*ir.Operation]State
}

// Succeeded returns true if all the operations of the function are legal.
func (r *Result) Succeeded() bool {
	return len(r.Failures) == 0
}

// State returns the state of an operation at the end of the conversion.
func (r *Result) State(op *ir.Operation) State {
	return r.states[op]
}

// Err returns all the failures combined in a single error,
// or nil if the conversion succeeded.
func (r *Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// BlockingKinds returns the sorted list of the kinds of operations
// which could not be legalized.
func (r *Result) BlockingKinds() []ir.Kind {
	set := make(map[ir.Kind]bool)
	for _, f := range r.Failures {
		set[f.Kind] = true
	}
	kinds := make([]ir.Kind, 0, len(set))
	for kind := range set {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Event is the type of a diagnostic.
type Event int

const (
	// RuleRejected is reported for each rule tried on an operation that
	// could not be legalized.
	RuleRejected Event = iota
	// OperationFailed is reported when an operation cannot be legalized.
	OperationFailed
	// FunctionFailed is reported once at the end of a failed conversion.
	FunctionFailed
)

func (e Event) String() string {
	switch e {
	case RuleRejected:
		return "rule-rejected"
	case OperationFailed:
		return "operation-failed"
	case FunctionFailed:
		return "function-failed"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Diagnostic is an observation made by the driver.
// Diagnostics never change the outcome of a conversion.
type Diagnostic struct {
	Event Event
	Func  string
	// Op is nil for FunctionFailed.
	Op   *ir.Operation
	Kind ir.Kind
	Loc  ir.Location
	// Rule is set for RuleRejected.
	Rule   string
	Reason error
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: func %s", d.Event, d.Func)
	if d.Kind != "" {
		fmt.Fprintf(&b, ": %s", d.Kind)
	}
	if d.Loc != ir.UnknownLoc {
		fmt.Fprintf(&b, " at %s", d.Loc)
	}
	if d.Rule != "" {
		fmt.Fprintf(&b, ": rule %s", d.Rule)
	}
	if d.Reason != nil {
		fmt.Fprintf(&b, ": %v", d.Reason)
	}
	return b.String()
}
