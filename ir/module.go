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

package ir

import "github.com/pkg/errors"

// Module is an ordered set of functions.
type Module struct {
	funcs []*Func
}

// NewModule returns a module given its functions.
func NewModule(funcs ...*Func) (*Module, error) {
	m := &Module{}
	for _, f := range funcs {
		if err := m.Add(f); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add a function to the module.
func (m *Module) Add(f *Func) error {
	if m.Func(f.Name()) != nil {
		return errors.Errorf("function %s already defined", f.Name())
	}
	m.funcs = append(m.funcs, f)
	return nil
}

// Funcs returns the functions of the module in declaration order.
func (m *Module) Funcs() []*Func {
	return append([]*Func{}, m.funcs...)
}

// Func returns a function given its name or nil if no such function exists.
func (m *Module) Func(name string) *Func {
	for _, f := range m.funcs {
		if f.Name() == name {
			return f
		}
	}
	return nil
}
