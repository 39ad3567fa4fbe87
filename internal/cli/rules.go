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
	"strings"

	"github.com/gx-org/legalize/legalize"
	"github.com/gx-org/legalize/rules/hlotf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	var targetPath string
	cmd := &cobra.Command{
		Use:           "rules",
		Short:         "List the conversion target and the rules in the order they are tried",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := hlotf.Target()
			if targetPath != "" {
				var err error
				if target, err = legalize.LoadTarget(targetPath); err != nil {
					return err
				}
			}
			return printRules(cmd, rootOpts, target, hlotf.Rules())
		},
	}
	cmd.Flags().StringVar(&targetPath, "target", "", "YAML file declaring the legal operations (default: TensorFlow)")
	return cmd
}

func printRules(cmd *cobra.Command, opts *RootOptions, target *legalize.Target, rules *legalize.RuleSet) error {
	w := cmd.OutOrStdout()
	data, err := yaml.Marshal(target.Config())
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "target:")
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w, "rules:")
	for _, kind := range rules.Kinds() {
		for _, rule := range rules.For(kind) {
			fmt.Fprintf(w, "  %-18s %s\n", kind, rule.Name())
		}
	}
	if opts.Verbose {
		fmt.Fprintf(w, "%d rule(s) for %d kind(s)\n", rules.Len(), len(rules.Kinds()))
	}
	return nil
}
