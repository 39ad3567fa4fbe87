// Package ordered provides ordered data structures.
//
// Attributes of an operation and the rule table of a conversion
// are stored in ordered maps so that printing and rule dispatch
// do not depend on Go map iteration order.
package ordered

// Map is an ordered map. Iter iterates over the map
// using the same order in which the keys have been added.
type Map[K comparable, V any] struct {
	keys []K
	m    map[K]V
}

// NewMap returns a new ordered map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Store a key,value pair.
// Storing an existing key replaces its value but keeps its position.
func (m *Map[K, V]) Store(k K, v V) {
	if _, in := m.m[k]; !in {
		m.keys = append(m.keys, k)
	}
	m.m[k] = v
}

// Load returns a value given a key.
func (m *Map[K, V]) Load(k K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.m[k]
	return v, ok
}

// Delete removes a key from the map.
// It returns false if the key was not present.
func (m *Map[K, V]) Delete(k K) bool {
	if _, in := m.m[k]; !in {
		return false
	}
	delete(m.m, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Iter returns an iterator to range over the elements of the map.
func (m *Map[K, V]) Iter() func(func(K, V) bool) {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.m[k]) {
				break
			}
		}
	}
}

// Keys returns the keys of the map in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return append([]K{}, m.keys...)
}

// Values returns an iterator to range over the values of the map.
func (m *Map[K, V]) Values() func(func(V) bool) {
	return func(yield func(V) bool) {
		for _, v := range m.Iter() {
			if !yield(v) {
				break
			}
		}
	}
}

// Clone creates a new map with the same keys and values.
// This is a shallow clone.
func (m *Map[K, V]) Clone() *Map[K, V] {
	r := NewMap[K, V]()
	for k, v := range m.Iter() {
		r.Store(k, v)
	}
	return r
}

// Size returns the number of elements in the map.
func (m *Map[K, V]) Size() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Equal returns true if both maps have the same set of keys
// and eq returns true for the values of each key.
// The insertion order is not compared.
func (m *Map[K, V]) Equal(other *Map[K, V], eq func(V, V) bool) bool {
	if m.Size() != other.Size() {
		return false
	}
	for k, v := range m.Iter() {
		ov, ok := other.Load(k)
		if !ok || !eq(v, ov) {
			return false
		}
	}
	return true
}
