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
	"os"
	"sort"

	"github.com/gx-org/legalize/ir"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// Target declares which operations are legal at the end of a conversion.
// Legality only depends on the kind of an operation.
type Target struct {
	legalDialects map[string]bool
	legalOps      map[ir.Kind]bool
	illegalOps    map[ir.Kind]bool
}

// NewTarget returns a target with no legal operation.
func NewTarget() *Target {
	return &Target{
		legalDialects: make(map[string]bool),
		legalOps:      make(map[ir.Kind]bool),
		illegalOps:    make(map[ir.Kind]bool),
	}
}

// AddLegalDialect declares all the operations of the given dialects as legal.
func (t *Target) AddLegalDialect(dialects ...string) *Target {
	for _, dialect := range dialects {
		t.legalDialects[dialect] = true
	}
	return t
}

// AddLegalOp declares individual kinds of operations as legal,
// even if their dialect is not legal.
func (t *Target) AddLegalOp(kinds ...ir.Kind) *Target {
	for _, kind := range kinds {
		t.legalOps[kind] = true
		delete(t.illegalOps, kind)
	}
	return t
}

// AddIllegalOp declares individual kinds of operations as illegal,
// even if their dialect is legal.
func (t *Target) AddIllegalOp(kinds ...ir.Kind) *Target {
	for _, kind := range kinds {
		t.illegalOps[kind] = true
		delete(t.legalOps, kind)
	}
	return t
}

// IsLegal returns true if an operation can remain in the converted function.
func (t *Target) IsLegal(op *ir.Operation) bool {
	return t.IsLegalKind(op.Kind())
}

// IsLegalKind returns true if operations of a given kind are legal.
func (t *Target) IsLegalKind(kind ir.Kind) bool {
	if t.illegalOps[kind] {
		return false
	}
	if t.legalOps[kind] {
		return true
	}
	return t.legalDialects[kind.Dialect()]
}

// LegalDialects returns the sorted list of legal dialects.
func (t *Target) LegalDialects() []string {
	dialects := maps.Keys(t.legalDialects)
	sort.Strings(dialects)
	return dialects
}

func sortedKinds(set map[ir.Kind]bool) []string {
	kinds := make([]string, 0, len(set))
	for _, kind := range maps.Keys(set) {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	return kinds
}

// TargetConfig is the serializable form of a target.
type TargetConfig struct {
	LegalDialects []string `yaml:"legal_dialects"`
	LegalOps      []string `yaml:"legal_ops,omitempty"`
	IllegalOps    []string `yaml:"illegal_ops,omitempty"`
}

// Config returns the serializable form of the target.
func (t *Target) Config() TargetConfig {
	return TargetConfig{
		LegalDialects: t.LegalDialects(),
		LegalOps:      sortedKinds(t.legalOps),
		IllegalOps:    sortedKinds(t.illegalOps),
	}
}

// Target builds a target from its configuration.
func (cfg TargetConfig) Target() *Target {
	t := NewTarget().AddLegalDialect(cfg.LegalDialects...)
	for _, kind := range cfg.LegalOps {
		t.AddLegalOp(ir.Kind(kind))
	}
	for _, kind := range cfg.IllegalOps {
		t.AddIllegalOp(ir.Kind(kind))
	}
	return t
}

// ParseTarget parses a target written in YAML.
func ParseTarget(data []byte) (*Target, error) {
	var cfg TargetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse conversion target")
	}
	for _, kind := range append(append([]string{}, cfg.LegalOps...), cfg.IllegalOps...) {
		if ir.Kind(kind).Dialect() == "" {
			return nil, errors.Errorf("invalid operation kind %q in conversion target: missing dialect", kind)
		}
	}
	return cfg.Target(), nil
}

// LoadTarget reads a target from a YAML file.
func LoadTarget(path string) (*Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read conversion target")
	}
	return ParseTarget(data)
}
