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

// Package uname provides unique names.
package uname

import "fmt"

// Unique generates unique names.
type Unique struct {
	taken map[string]bool
	next  map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{
		taken: make(map[string]bool),
		next:  make(map[string]int),
	}
}

// Register reserves a name so that it is never generated.
// It returns false if the name was already taken.
func (n *Unique) Register(name string) bool {
	if n.taken[name] {
		return false
	}
	n.taken[name] = true
	return true
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	if n.Register(root) {
		return root
	}
	for {
		n.next[root]++
		name := fmt.Sprintf("%s_%d", root, n.next[root])
		if n.Register(name) {
			return name
		}
	}
}

// Root returns a generator of numbered names sharing a prefix.
func (n *Unique) Root(prefix string) *Root {
	return &Root{unique: n, prefix: prefix}
}

// Root generates names of the form <prefix><number>.
type Root struct {
	unique *Unique
	prefix string
	count  int
}

// Next returns the next available numbered name.
// Numbers already taken are skipped.
func (r *Root) Next() string {
	for {
		name := fmt.Sprintf("%s%d", r.prefix, r.count)
		r.count++
		if r.unique.Register(name) {
			return name
		}
	}
}
