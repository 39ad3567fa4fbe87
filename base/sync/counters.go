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

// Package sync provides concurrent data structures.
package sync

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
)

// Counters counts events by key. Counters can be incremented concurrently.
type Counters[K cmp.Ordered] struct {
	m sync.Map
}

// Add n to the counter of a key.
func (c *Counters[K]) Add(k K, n int64) {
	v, ok := c.m.Load(k)
	if !ok {
		v, _ = c.m.LoadOrStore(k, new(atomic.Int64))
	}
	v.(*atomic.Int64).Add(n)
}

// Load returns the counter of a key.
func (c *Counters[K]) Load(k K) int64 {
	v, ok := c.m.Load(k)
	if !ok {
		return 0
	}
	return v.(*atomic.Int64).Load()
}

// Keys returns the sorted list of keys with a counter.
func (c *Counters[K]) Keys() []K {
	var keys []K
	c.m.Range(func(k, _ any) bool {
		keys = append(keys, k.(K))
		return true
	})
	slices.Sort(keys)
	return keys
}

// Iter returns an iterator over the counters, ordered by key.
func (c *Counters[K]) Iter() func(func(K, int64) bool) {
	return func(yield func(K, int64) bool) {
		for _, k := range c.Keys() {
			if !yield(k, c.Load(k)) {
				return
			}
		}
	}
}
