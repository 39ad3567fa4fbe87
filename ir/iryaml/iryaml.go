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

// Package iryaml loads modules written in YAML.
//
// A module is a list of functions:
//
//	funcs:
//	  - name: main
//	    args:
//	      - {name: x, type: "f32[8]"}
//	    ops:
//	      - kind: hlo.dot
//	        operands: [x, x]
//	        results:
//	          - {name: r, type: "f32[]"}
//	        attrs:
//	          strides: {ints: [1]}
//	    returns: [r]
//
// Attributes are written as a single-key mapping selecting their type:
// ints, bool, int, float, string or dense ({type: "i64[2]", values: [1, 2]}).
package iryaml

import (
	"fmt"
	"io"
	"os"

	"github.com/gx-org/legalize/base/fmterr"
	"github.com/gx-org/legalize/ir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	moduleNode struct {
		Funcs []yaml.Node `yaml:"funcs"`
	}

	funcNode struct {
		Name    string      `yaml:"name"`
		Args    []valueNode `yaml:"args"`
		Ops     []yaml.Node `yaml:"ops"`
		Returns []string    `yaml:"returns"`
	}

	valueNode struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}

	opNode struct {
		Kind     string      `yaml:"kind"`
		Operands []string    `yaml:"operands"`
		Results  []valueNode `yaml:"results"`
		Attrs    yaml.Node   `yaml:"attrs"`
		Loc      string      `yaml:"loc"`
	}

	denseNode struct {
		Type   string    `yaml:"type"`
		Values yaml.Node `yaml:"values"`
	}

	pos struct {
		file string
		line int
	}

	loader struct {
		file string
		errs fmterr.Errors
	}
)

func (p pos) String() string {
	return fmt.Sprintf("%s:%d", p.file, p.line)
}

func (ld *loader) pos(node *yaml.Node) pos {
	return pos{file: ld.file, line: node.Line}
}

// LoadFile loads a module from a YAML file.
func LoadFile(path string) (*ir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read module")
	}
	return Load(path, data)
}

// LoadReader loads a module from a reader. name is used in error messages and locations.
func LoadReader(name string, r io.Reader) (*ir.Module, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read module %s", name)
	}
	return Load(name, data)
}

// Load a module from YAML data. All the errors found in the data are reported.
func Load(name string, data []byte) (*ir.Module, error) {
	var mod moduleNode
	if err := yaml.Unmarshal(data, &mod); err != nil {
		return nil, errors.Wrapf(err, "cannot parse module %s", name)
	}
	ld := &loader{file: name}
	m := &ir.Module{}
	for i := range mod.Funcs {
		f, ok := ld.loadFunc(&mod.Funcs[i])
		if !ok {
			continue
		}
		if err := m.Add(f); err != nil {
			ld.errs.Append(fmterr.Position(ld.pos(&mod.Funcs[i]), err))
		}
	}
	if err := ld.errs.ToError(); err != nil {
		return nil, err
	}
	return m, nil
}

func (ld *loader) loadFunc(node *yaml.Node) (*ir.Func, bool) {
	var fn funcNode
	if err := node.Decode(&fn); err != nil {
		return nil, ld.errs.Append(fmterr.Position(ld.pos(node), err))
	}
	if fn.Name == "" {
		return nil, ld.errs.Appendf(ld.pos(node), "function has no name")
	}
	ld.errs.Push(fmterr.PrefixWith("func %s: ", fn.Name))
	defer ld.errs.Pop()
	f := ir.NewFunc(fn.Name)
	scope := make(map[string]*ir.Value)
	ok := true
	for _, arg := range fn.Args {
		typ, err := ir.ParseType(arg.Type)
		if err != nil {
			ok = ld.errs.Append(fmterr.Position(ld.pos(node), err))
			continue
		}
		v := f.AddArg(typ, arg.Name)
		ok = ld.declare(node, scope, arg.Name, v) && ok
	}
	b := ir.NewBuilder(f)
	for i := range fn.Ops {
		ok = ld.loadOp(b, &fn.Ops[i], scope) && ok
	}
	var returns []*ir.Value
	for _, name := range fn.Returns {
		v, found := scope[name]
		if !found {
			ok = ld.errs.Appendf(ld.pos(node), "returned value %q is not defined", name)
			continue
		}
		returns = append(returns, v)
	}
	if !ok {
		return nil, false
	}
	if err := f.SetReturns(returns...); err != nil {
		return nil, ld.errs.Append(err)
	}
	return f, true
}

func (ld *loader) declare(node *yaml.Node, scope map[string]*ir.Value, name string, v *ir.Value) bool {
	if name == "" {
		return true
	}
	if _, dup := scope[name]; dup {
		return ld.errs.Appendf(ld.pos(node), "value %q already defined", name)
	}
	scope[name] = v
	return true
}

func (ld *loader) loadOp(b *ir.Builder, node *yaml.Node, scope map[string]*ir.Value) bool {
	var op opNode
	if err := node.Decode(&op); err != nil {
		return ld.errs.Append(fmterr.Position(ld.pos(node), err))
	}
	if op.Kind == "" {
		return ld.errs.Appendf(ld.pos(node), "operation has no kind")
	}
	ok := true
	operands := make([]*ir.Value, len(op.Operands))
	for i, name := range op.Operands {
		v, found := scope[name]
		if !found {
			ok = ld.errs.Appendf(ld.pos(node), "%s: operand %d: value %q is not defined", op.Kind, i, name)
			continue
		}
		operands[i] = v
	}
	results := make([]ir.Type, len(op.Results))
	for i, res := range op.Results {
		typ, err := ir.ParseType(res.Type)
		if err != nil {
			ok = ld.errs.Append(fmterr.Position(ld.pos(node), err))
			continue
		}
		results[i] = typ
	}
	attrs, attrsOk := ld.loadAttrs(&op.Attrs)
	if !ok || !attrsOk {
		return false
	}
	loc := ir.Location(op.Loc)
	if loc == ir.UnknownLoc {
		loc = ir.Location(ld.pos(node).String())
	}
	b.SetLoc(loc)
	created := b.Create(ir.Kind(op.Kind), operands, results, attrs...)
	for i, res := range op.Results {
		created.Result(i).SetName(res.Name)
		ok = ld.declare(node, scope, res.Name, created.Result(i)) && ok
	}
	return ok
}

func (ld *loader) loadAttrs(node *yaml.Node) ([]ir.NamedAttr, bool) {
	if node.Kind == 0 {
		return nil, true
	}
	if node.Kind != yaml.MappingNode {
		return nil, ld.errs.Appendf(ld.pos(node), "attributes must be a mapping")
	}
	ok := true
	var attrs []ir.NamedAttr
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		attr, err := ld.loadAttr(node.Content[i+1])
		if err != nil {
			ok = ld.errs.Append(fmterr.Position(ld.pos(node.Content[i]), errors.Wrapf(err, "attribute %q", name)))
			continue
		}
		attrs = append(attrs, ir.Named(name, attr))
	}
	return attrs, ok
}

func (ld *loader) loadAttr(node *yaml.Node) (ir.Attribute, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return nil, errors.Errorf("expected a mapping with a single key selecting the attribute type")
	}
	key, val := node.Content[0].Value, node.Content[1]
	switch key {
	case "ints":
		var ints []int64
		err := val.Decode(&ints)
		return ir.IntsAttr(ints), err
	case "bool":
		var b bool
		err := val.Decode(&b)
		return ir.BoolAttr(b), err
	case "int":
		var i int64
		err := val.Decode(&i)
		return ir.IntAttr(i), err
	case "float":
		var f float64
		err := val.Decode(&f)
		return ir.FloatAttr(f), err
	case "string":
		var s string
		err := val.Decode(&s)
		return ir.StringAttr(s), err
	case "dense":
		return loadDense(val)
	}
	return nil, errors.Errorf("unknown attribute type %q", key)
}

func loadDense(node *yaml.Node) (ir.Attribute, error) {
	var dense denseNode
	if err := node.Decode(&dense); err != nil {
		return nil, err
	}
	typ, err := ir.ParseType(dense.Type)
	if err != nil {
		return nil, err
	}
	if ir.IsFloat(typ.DType) {
		var vals []float64
		if dense.Values.Kind != 0 {
			if err := dense.Values.Decode(&vals); err != nil {
				return nil, err
			}
		}
		return ir.DenseFloats(typ, vals)
	}
	var vals []int64
	if dense.Values.Kind != 0 {
		if err := dense.Values.Decode(&vals); err != nil {
			return nil, err
		}
	}
	return ir.DenseInts(typ, vals)
}
