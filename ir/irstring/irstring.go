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

// Package irstring builds a textual representation of functions and modules.
//
// The output looks like:
//
//	func @main(%x: f32[8], %y: f32[8]) -> (f32[]) {
//	  %0 = hlo.dot(%x, %y) : (f32[8], f32[8]) -> f32[]
//	  return %0
//	}
package irstring

import (
	"fmt"
	"strings"

	"github.com/gx-org/legalize/base/uname"
	"github.com/gx-org/legalize/ir"
)

type printer struct {
	b       strings.Builder
	unames  *uname.Unique
	numbers *uname.Root
	names   map[*ir.Value]string
}

func newPrinter() *printer {
	unames := uname.New()
	return &printer{
		unames:  unames,
		numbers: unames.Root(""),
		names:   make(map[*ir.Value]string),
	}
}

func (p *printer) define(v *ir.Value, root string) string {
	var name string
	switch {
	case v.Name() != "":
		name = p.unames.Name(v.Name())
	case root != "":
		name = p.unames.Name(root)
	default:
		name = p.numbers.Next()
	}
	p.names[v] = name
	return "%" + name
}

func (p *printer) ref(v *ir.Value) string {
	name, ok := p.names[v]
	if !ok {
		return fmt.Sprintf("<undefined %s>", v)
	}
	return "%" + name
}

func (p *printer) refs(vals []*ir.Value) string {
	ss := make([]string, len(vals))
	for i, v := range vals {
		ss[i] = p.ref(v)
	}
	return strings.Join(ss, ", ")
}

func typeList(types []ir.Type) string {
	ss := make([]string, len(types))
	for i, t := range types {
		ss[i] = t.String()
	}
	return strings.Join(ss, ", ")
}

func resultTypes(types []ir.Type) string {
	if len(types) == 1 {
		return types[0].String()
	}
	return "(" + typeList(types) + ")"
}

func valueTypes(vals []*ir.Value) []ir.Type {
	types := make([]ir.Type, len(vals))
	for i, v := range vals {
		types[i] = v.Type()
	}
	return types
}

func (p *printer) op(op *ir.Operation) {
	p.b.WriteString("  ")
	if op.NumResults() > 0 {
		results := make([]string, op.NumResults())
		for i, res := range op.Results() {
			results[i] = p.define(res, "")
		}
		p.b.WriteString(strings.Join(results, ", "))
		p.b.WriteString(" = ")
	}
	operands := op.Operands()
	fmt.Fprintf(&p.b, "%s(%s)", op.Kind(), p.refs(operands))
	if op.NumAttrs() > 0 {
		var attrs []string
		for name, attr := range op.Attrs() {
			attrs = append(attrs, name+" = "+attr.String())
		}
		fmt.Fprintf(&p.b, " {%s}", strings.Join(attrs, ", "))
	}
	fmt.Fprintf(&p.b, " : (%s) -> %s\n", typeList(valueTypes(operands)), resultTypes(op.ResultTypes()))
}

func (p *printer) fn(f *ir.Func) {
	args := make([]string, len(f.Args()))
	for i, arg := range f.Args() {
		args[i] = p.define(arg, "arg") + ": " + arg.Type().String()
	}
	returns := f.Returns()
	fmt.Fprintf(&p.b, "func @%s(%s) -> (%s) {\n", f.Name(), strings.Join(args, ", "), typeList(valueTypes(returns)))
	for op := range f.Ops() {
		p.op(op)
	}
	p.b.WriteString("  return")
	if len(returns) > 0 {
		p.b.WriteString(" " + p.refs(returns))
	}
	p.b.WriteString("\n}\n")
}

// Func returns the textual representation of a function.
func Func(f *ir.Func) string {
	p := newPrinter()
	p.fn(f)
	return p.b.String()
}

// Module returns the textual representation of all the functions of a module.
func Module(m *ir.Module) string {
	var ss []string
	for _, f := range m.Funcs() {
		ss = append(ss, Func(f))
	}
	return strings.Join(ss, "\n")
}
