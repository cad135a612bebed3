// Package orderedmultimap provides a multimap implementation backed by an
// XOR-linked, weight-balanced scapegoat tree. Distinct keys are kept in
// sorted order; values inserted under an equal key are kept in insertion
// order within that key's bucket.
package orderedmultimap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qntx/xortree/container"
	xcmp "github.com/qntx/xortree/cmp"
	"github.com/qntx/xortree/xortree"
)

// Multimap is an ordered key-value multimap, every Insert under a key
// succeeding regardless of what the key already holds.
//
// Multimap is not safe for concurrent use without external synchronization.
type Multimap[K any, V any] struct {
	tree *xortree.Tree[K, V]
}

// New creates an empty Multimap ordered by the built-in comparator for K.
//
// Time complexity: O(1).
func New[K xcmp.Ordered, V any]() *Multimap[K, V] {
	return NewWith[K, V](xcmp.Compare[K])
}

// NewWith creates an empty Multimap ordered by a custom comparator.
//
// Time complexity: O(1).
func NewWith[K any, V any](comparator xcmp.Comparator[K]) *Multimap[K, V] {
	return &Multimap[K, V]{tree: xortree.NewWith[K, V](comparator)}
}

// Comparator returns the comparator the multimap was constructed with.
func (m *Multimap[K, V]) Comparator() xcmp.Comparator[K] { return m.tree.Comparator }

// Insert adds val under key, keeping any values already stored there.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) Insert(key K, val V) {
	ref, _ := m.tree.Emplace(key)
	m.tree.AppendBucket(ref, val)
}

// Get returns every value stored under key, in insertion order.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) Get(key K) ([]V, bool) {
	ref, found := m.tree.Find(key)
	if !found {
		return nil, false
	}

	return m.tree.Bucket(ref), true
}

// Count returns the number of values stored under key.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) Count(key K) int {
	ref, found := m.tree.Find(key)
	if !found {
		return 0
	}

	return m.tree.BucketLen(ref)
}

// Contains reports whether key holds at least one value.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) Contains(key K) bool {
	_, found := m.tree.Find(key)

	return found
}

// EraseAll removes every value stored under key, returning the number
// removed.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) EraseAll(key K) int {
	return m.tree.DeleteKey(key)
}

// LowerBound returns the least distinct key not less than key.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) LowerBound(key K) (K, bool) {
	ref, _, ok := m.tree.LowerBound(key)
	if !ok {
		var zero K

		return zero, false
	}

	return m.tree.Key(ref), true
}

// UpperBound returns the least distinct key strictly greater than key.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) UpperBound(key K) (K, bool) {
	ref, _, ok := m.tree.UpperBound(key)
	if !ok {
		var zero K

		return zero, false
	}

	return m.tree.Key(ref), true
}

// EqualRange returns a pair of iterators bounding the range of distinct keys
// equal to key. lo is positioned at that key if present, otherwise at its
// lower bound; hi is always positioned just past it. Bucket at lo gives
// every value stored under key.
//
// Time complexity: O(log n) amortized.
func (m *Multimap[K, V]) EqualRange(key K) (lo, hi *xortree.Iterator[K, V]) {
	if loRef, loParent, ok := m.tree.LowerBound(key); ok {
		lo = m.tree.IteratorAt(loRef, loParent)
	} else {
		lo = m.tree.Iterator()
		lo.End()
	}

	if hiRef, hiParent, ok := m.tree.UpperBound(key); ok {
		hi = m.tree.IteratorAt(hiRef, hiParent)
	} else {
		hi = m.tree.Iterator()
		hi.End()
	}

	return lo, hi
}

// Empty reports whether the multimap holds no keys.
//
// Time complexity: O(1).
func (m *Multimap[K, V]) Empty() bool { return m.tree.Empty() }

// KeyLen returns the number of distinct keys.
//
// Time complexity: O(1).
func (m *Multimap[K, V]) KeyLen() int { return m.tree.Len() }

// Len returns the total number of key-value pairs, counting every bucket
// entry under every key.
//
// Time complexity: O(n).
func (m *Multimap[K, V]) Len() int { return len(m.tree.Values()) }

// Clear removes every key and value.
//
// Time complexity: O(1).
func (m *Multimap[K, V]) Clear() { m.tree.Clear() }

// Keys returns every distinct key in ascending order.
//
// Time complexity: O(n).
func (m *Multimap[K, V]) Keys() []K { return m.tree.Keys() }

// KeysAndValues returns parallel key/value slices: each key repeated once
// per value in its bucket, values within a key in insertion order, keys in
// ascending order overall.
//
// Time complexity: O(n).
func (m *Multimap[K, V]) KeysAndValues() ([]K, []V) { return m.tree.KeysAndValues() }

// Iterator returns an iterator over distinct keys, positioned before the
// first one. Bucket returns every value stored at the current key.
//
// Time complexity: O(1).
func (m *Multimap[K, V]) Iterator() *xortree.Iterator[K, V] { return m.tree.Iterator() }

// String returns a string representation of the multimap.
func (m *Multimap[K, V]) String() string {
	var b strings.Builder

	b.WriteString("Multimap\n")

	it := m.tree.Iterator()
	for it.Next() {
		fmt.Fprintf(&b, "%v -> %v\n", it.Key(), it.Bucket())
	}

	return b.String()
}

// --------------------------------------------------------------------------------
// JSON serialization

// Predefined errors for JSON operations.
var (
	ErrMarshalJSONFailure   = errors.New("failed to marshal multimap to JSON")
	ErrUnmarshalJSONFailure = errors.New("failed to unmarshal JSON into multimap")
)

// Ensure Multimap implements the expected serialization interfaces at
// compile time.
var (
	_ container.JSONSerializer   = (*Multimap[string, int])(nil)
	_ container.JSONDeserializer = (*Multimap[string, int])(nil)
	_ json.Marshaler             = (*Multimap[string, int])(nil)
	_ json.Unmarshaler           = (*Multimap[string, int])(nil)
)

// entry is the wire representation of a single distinct key and its whole
// bucket of values. K is only constrained to any (spec §3 allows a
// non-comparable key, so long as the comparator can order it), which rules
// out keying a JSON object on K directly — encoding/json requires
// comparable, string-keyed map types for that. An ordered slice of pairs
// has no such requirement and round-trips any K the comparator can handle.
type entry[K, V any] struct {
	Key    K   `json:"key"`
	Values []V `json:"values"`
}

// ToJSON serializes the multimap into a JSON array of key/bucket pairs,
// ordered by ascending key.
//
// Time complexity: O(n).
func (m *Multimap[K, V]) ToJSON() ([]byte, error) {
	elems := make([]entry[K, V], 0, m.tree.Len())

	it := m.tree.Iterator()
	for it.Next() {
		elems = append(elems, entry[K, V]{Key: it.Key(), Values: it.Bucket()})
	}

	data, err := json.Marshal(elems)
	if err != nil {
		return nil, fmt.Errorf("orderedmultimap: %w: %w", ErrMarshalJSONFailure, err)
	}

	return data, nil
}

// FromJSON populates the multimap from a JSON array of key/bucket pairs,
// clearing it first.
//
// Time complexity: O(n log n).
func (m *Multimap[K, V]) FromJSON(data []byte) error {
	var elems []entry[K, V]
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("orderedmultimap: %w: %w", ErrUnmarshalJSONFailure, err)
	}

	m.tree.Clear()

	for _, e := range elems {
		for _, v := range e.Values {
			m.Insert(e.Key, v)
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler by delegating to ToJSON.
func (m *Multimap[K, V]) MarshalJSON() ([]byte, error) { return m.ToJSON() }

// UnmarshalJSON implements json.Unmarshaler by delegating to FromJSON.
func (m *Multimap[K, V]) UnmarshalJSON(data []byte) error { return m.FromJSON(data) }
