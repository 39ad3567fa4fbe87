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

// Package cli implements the hlolegal command line.
package cli

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command of hlolegal.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hlolegal",
		Short: "Legalize HLO programs to TensorFlow",
		Long: `Legalize HLO programs to TensorFlow.

Programs are read from YAML files. Each function is converted independently:
illegal HLO operations are rewritten until only TensorFlow operations remain.`,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log each rewrite and each rejected rule")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

// newLogger returns a logger writing human readable logs to w.
// The returned function flushes the logs.
func newLogger(opts *RootOptions, w io.Writer) (logr.Logger, func()) {
	level := zapcore.InfoLevel
	if opts.Verbose {
		// zapr maps V(n) to the zap level -n.
		level = zapcore.Level(-2)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	zl := zap.New(core)
	return zapr.NewLogger(zl), func() { _ = zl.Sync() }
}
