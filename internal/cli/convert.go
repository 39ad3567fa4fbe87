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

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/gx-org/legalize/base/sync"
	"github.com/gx-org/legalize/ir/irstring"
	"github.com/gx-org/legalize/ir/iryaml"
	"github.com/gx-org/legalize/legalize"
	"github.com/gx-org/legalize/rules/hlotf"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// ConvertOptions holds the flags of the convert command.
type ConvertOptions struct {
	Target   string
	Output   string
	FailFast bool
	Verify   bool
	Stats    bool
	Workers  int
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <program.yaml>",
		Short: "Convert the functions of a program to TensorFlow",
		Long: `Convert the functions of a program to TensorFlow.

The converted program is printed on the standard output or written to the
file given by --output. Functions which cannot be fully converted are
reported on the standard error with the operations blocking them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "target", "", "YAML file declaring the legal operations (default: TensorFlow)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the converted program to a file")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop converting a function at its first failure")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "verify functions after each rewrite")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print the rules rejected by operations which could not be legalized")
	cmd.Flags().IntVar(&opts.Workers, "workers", legalize.DefaultWorkers, "number of functions converted simultaneously")

	return cmd
}

// newConfig overrides the default configuration with the command flags.
func newConfig(opts *ConvertOptions, cfg legalize.Config) (legalize.Config, error) {
	if opts.Target != "" {
		target, err := legalize.LoadTarget(opts.Target)
		if err != nil {
			return cfg, err
		}
		cfg.Target = target
	}
	cfg.FailFast = opts.FailFast
	cfg.VerifyEachRewrite = opts.Verify
	return cfg, nil
}

func runConvert(rootOpts *RootOptions, opts *ConvertOptions, path string, cmd *cobra.Command) error {
	logger, flush := newLogger(rootOpts, cmd.ErrOrStderr())
	defer flush()

	if opts.Workers < 1 {
		return errors.Errorf("invalid number of workers %d: must be at least 1", opts.Workers)
	}
	m, err := iryaml.LoadFile(path)
	if err != nil {
		return err
	}
	cfg, err := newConfig(opts, hlotf.Config(logger))
	if err != nil {
		return err
	}
	var rejections sync.Counters[string]
	cfg.OnDiagnostic = func(diag legalize.Diagnostic) {
		if diag.Event == legalize.RuleRejected {
			rejections.Add(diag.Rule, 1)
		}
	}
	driver, err := legalize.NewDriver(cfg)
	if err != nil {
		return err
	}
	results, convErr := driver.ConvertModule(m, opts.Workers)

	if err := writeProgram(cmd, opts.Output, irstring.Module(m)); err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), results)
	if opts.Stats {
		for rule, n := range rejections.Iter() {
			fmt.Fprintf(cmd.ErrOrStderr(), "rule %s: rejected %d time(s)\n", rule, n)
		}
	}
	if convErr != nil {
		failed := len(multierr.Errors(convErr))
		return errors.Errorf("%d operation(s) could not be legalized:\n%v", failed, convErr)
	}
	return nil
}

func writeProgram(cmd *cobra.Command, output, program string) error {
	if output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), program)
		return err
	}
	if err := os.WriteFile(output, []byte(program), 0o644); err != nil {
		return errors.Wrapf(err, "cannot write converted program")
	}
	return nil
}

func printSummary(w io.Writer, results []*legalize.Result) {
	for _, res := range results {
		status := "ok"
		if !res.Succeeded() {
			status = fmt.Sprintf("FAILED (blocked by %v)", res.BlockingKinds())
		}
		fmt.Fprintf(w, "%s: %s: %d rewrite(s), %d rule invocation(s)\n", res.Func.Name(), status, res.Rewrites, res.RuleInvocations)
	}
}
