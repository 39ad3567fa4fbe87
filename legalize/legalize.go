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

// Package legalize rewrites the operations of a function until all of them
// are legal for a conversion target.
//
// A Driver pulls operations from a worklist, checks their legality against
// a Target and, for illegal operations, tries the rules registered for the
// operation kind in a RuleSet. The first rule that applies emits new
// operations through a Rewriter and declares the values replacing the
// results of the matched operation. The driver then rewires all uses,
// erases the matched operation and enqueues the new operations.
// A rule that does not apply leaves the function unchanged: anything it
// created is rolled back.
package legalize

import "github.com/pkg/errors"

var (
	// ErrNotApplicable is returned by a rule when the operation does not
	// satisfy its precondition. The driver tries the next rule.
	ErrNotApplicable = errors.New("rule not applicable")

	// ErrPreconditionViolated is returned by a rule that discovers, after
	// it started emitting operations, that it cannot complete the rewrite.
	// The driver rolls back the emitted operations and tries the next rule.
	ErrPreconditionViolated = errors.New("rule precondition violated")

	// ErrUnlegalizable reports an illegal operation that no rule could rewrite.
	ErrUnlegalizable = errors.New("unlegalizable operation")

	// ErrMalformedReplacement reports a rule that declared replacement values
	// incompatible with the results of the matched operation.
	ErrMalformedReplacement = errors.New("malformed replacement")

	// ErrRewriteBudget reports a function which exceeded the maximum number
	// of rewrites, typically because rules keep creating illegal operations.
	ErrRewriteBudget = errors.Wrap(ErrUnlegalizable, "rewrite budget exhausted")
)

// NotApplicable returns an error telling the driver that a rule does not apply.
func NotApplicable(format string, a ...any) error {
	return errors.WithMessagef(ErrNotApplicable, format, a...)
}

// PreconditionViolated returns an error telling the driver to roll back
// the operations emitted by a rule and to try the next rule.
func PreconditionViolated(format string, a ...any) error {
	return errors.WithMessagef(ErrPreconditionViolated, format, a...)
}

// isRejection returns true if the error only means that the rule did not apply.
func isRejection(err error) bool {
	return errors.Is(err, ErrNotApplicable) || errors.Is(err, ErrPreconditionViolated)
}
