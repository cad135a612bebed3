// Package orderedmap provides a map implementation backed by an
// XOR-linked, weight-balanced scapegoat tree, keeping keys in sorted order.
package orderedmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qntx/xortree/container"
	xcmp "github.com/qntx/xortree/cmp"
	"github.com/qntx/xortree/xortree"
)

// ErrInvalidKeyType is returned (via panic) when a comparator call panics,
// almost always because K does not actually support the ordering the
// comparator assumes.
var ErrInvalidKeyType = xortree.ErrInvalidKeyType

// Map is an ordered key-value map. Unlike the underlying tree, which lets a
// node's bucket grow without bound, Map enforces a bucket length of at most
// one: a Put to an existing key replaces its value rather than appending.
//
// Map is not safe for concurrent use without external synchronization.
type Map[K any, V any] struct {
	tree *xortree.Tree[K, V]
}

// New creates an empty Map ordered by the built-in comparator for K.
//
// Time complexity: O(1).
func New[K xcmp.Ordered, V any]() *Map[K, V] {
	return NewWith[K, V](xcmp.Compare[K])
}

// NewWith creates an empty Map ordered by a custom comparator.
//
// Time complexity: O(1).
func NewWith[K any, V any](comparator xcmp.Comparator[K]) *Map[K, V] {
	return &Map[K, V]{tree: xortree.NewWith[K, V](comparator)}
}

// Comparator returns the comparator the map was constructed with.
func (m *Map[K, V]) Comparator() xcmp.Comparator[K] { return m.tree.Comparator }

// Put inserts key with value val, overwriting any existing value for key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Put(key K, val V) {
	ref, _ := m.tree.Emplace(key)
	m.tree.SetBucket(ref, []V{val})
}

// Get retrieves the value associated with key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Get(key K) (val V, found bool) {
	ref, found := m.tree.Find(key)
	if !found {
		return val, false
	}

	return m.tree.Bucket(ref)[0], true
}

// At returns the value associated with key without inserting one on a miss
// — an alias for Get, named for parity with the original's precondition-
// bearing at(k).
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) At(key K) (val V, found bool) { return m.Get(key) }

// InsertOrAssign inserts key with value val, always succeeding and
// replacing any existing value — an alias for Put, named for parity with
// the original's insert_or_assign.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) InsertOrAssign(key K, val V) { m.Put(key, val) }

// Contains reports whether key is present.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Contains(key K) bool {
	_, found := m.tree.Find(key)

	return found
}

// Remove deletes key, doing nothing if it is absent.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Remove(key K) {
	m.tree.DeleteKey(key)
}

// Empty reports whether the map holds no entries.
//
// Time complexity: O(1).
func (m *Map[K, V]) Empty() bool { return m.tree.Empty() }

// Len returns the number of entries in the map.
//
// Time complexity: O(1).
func (m *Map[K, V]) Len() int { return m.tree.Len() }

// Clear removes every entry.
//
// Time complexity: O(1).
func (m *Map[K, V]) Clear() { m.tree.Clear() }

// MaxSize reports the theoretical upper bound on the number of entries the
// map can hold.
//
// Time complexity: O(1).
func (m *Map[K, V]) MaxSize() int { return m.tree.MaxSize() }

// Keys returns every key in ascending order.
//
// Time complexity: O(n).
func (m *Map[K, V]) Keys() []K { return m.tree.Keys() }

// Values returns every value, ordered by ascending key.
//
// Time complexity: O(n).
func (m *Map[K, V]) Values() []V { return m.tree.Values() }

// KeysAndValues returns parallel key/value slices, ordered by ascending key.
//
// Time complexity: O(n).
func (m *Map[K, V]) KeysAndValues() ([]K, []V) { return m.tree.KeysAndValues() }

// Floor returns the entry with the greatest key less than or equal to key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Floor(key K) (k K, v V, found bool) {
	ref, found := m.tree.Floor(key)
	if !found {
		return k, v, false
	}

	return m.tree.Key(ref), m.tree.Bucket(ref)[0], true
}

// Ceiling returns the entry with the least key greater than or equal to key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Ceiling(key K) (k K, v V, found bool) {
	ref, found := m.tree.Ceiling(key)
	if !found {
		return k, v, false
	}

	return m.tree.Key(ref), m.tree.Bucket(ref)[0], true
}

// LowerBound returns the entry with the least key not less than key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) LowerBound(key K) (k K, v V, found bool) {
	ref, _, ok := m.tree.LowerBound(key)
	if !ok {
		return k, v, false
	}

	return m.tree.Key(ref), m.tree.Bucket(ref)[0], true
}

// UpperBound returns the entry with the least key strictly greater than key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) UpperBound(key K) (k K, v V, found bool) {
	ref, _, ok := m.tree.UpperBound(key)
	if !ok {
		return k, v, false
	}

	return m.tree.Key(ref), m.tree.Bucket(ref)[0], true
}

// EqualRange returns a pair of iterators bounding the range of entries
// equal to key under the map's comparator — at most one entry, since Map
// enforces unique keys. lo is positioned at that entry if present,
// otherwise at its lower bound; hi is always positioned just past it.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) EqualRange(key K) (lo, hi *xortree.Iterator[K, V]) {
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

// First returns the entry with the smallest key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) First() (k K, v V, found bool) {
	ref, _, ok := m.tree.First()
	if !ok {
		return k, v, false
	}

	return m.tree.Key(ref), m.tree.Bucket(ref)[0], true
}

// Last returns the entry with the largest key.
//
// Time complexity: O(log n) amortized.
func (m *Map[K, V]) Last() (k K, v V, found bool) {
	ref, _, ok := m.tree.Last()
	if !ok {
		return k, v, false
	}

	return m.tree.Key(ref), m.tree.Bucket(ref)[0], true
}

// Iterator returns an iterator positioned before the first entry. Since a
// Map's buckets are never longer than one, Iterator.Value already returns
// the unique value stored at each key.
//
// Time complexity: O(1).
func (m *Map[K, V]) Iterator() *xortree.Iterator[K, V] { return m.tree.Iterator() }

// String returns a string representation of the map.
func (m *Map[K, V]) String() string {
	var b strings.Builder

	b.WriteString("Map\n")

	it := m.tree.Iterator()
	for it.Next() {
		fmt.Fprintf(&b, "%v -> %v\n", it.Key(), it.Value())
	}

	return b.String()
}

// --------------------------------------------------------------------------------
// JSON serialization

// Predefined errors for JSON operations.
var (
	ErrMarshalJSONFailure   = errors.New("failed to marshal map to JSON")
	ErrUnmarshalJSONFailure = errors.New("failed to unmarshal JSON into map")
)

// Ensure Map implements the expected serialization interfaces at compile time.
var (
	_ container.JSONSerializer   = (*Map[string, int])(nil)
	_ container.JSONDeserializer = (*Map[string, int])(nil)
	_ json.Marshaler             = (*Map[string, int])(nil)
	_ json.Unmarshaler           = (*Map[string, int])(nil)
)

// entry is the wire representation of a single map entry. K is only
// constrained to any (spec §3 allows a non-comparable key, so long as the
// comparator can order it), which rules out keying a JSON object on K
// directly — encoding/json requires comparable, string-keyed map types for
// that. An ordered slice of pairs has no such requirement and round-trips
// any K the comparator can handle.
type entry[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// ToJSON serializes the map into a JSON array of key/value pairs, ordered
// by ascending key.
//
// Time complexity: O(n).
func (m *Map[K, V]) ToJSON() ([]byte, error) {
	elems := make([]entry[K, V], 0, m.tree.Len())

	it := m.tree.Iterator()
	for it.Next() {
		elems = append(elems, entry[K, V]{Key: it.Key(), Value: it.Value()})
	}

	data, err := json.Marshal(elems)
	if err != nil {
		return nil, fmt.Errorf("orderedmap: %w: %w", ErrMarshalJSONFailure, err)
	}

	return data, nil
}

// FromJSON populates the map from a JSON array of key/value pairs, clearing
// it first.
//
// Time complexity: O(n log n).
func (m *Map[K, V]) FromJSON(data []byte) error {
	var elems []entry[K, V]
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("orderedmap: %w: %w", ErrUnmarshalJSONFailure, err)
	}

	m.tree.Clear()

	for _, e := range elems {
		m.Put(e.Key, e.Value)
	}

	return nil
}

// MarshalJSON implements json.Marshaler by delegating to ToJSON.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) { return m.ToJSON() }

// UnmarshalJSON implements json.Unmarshaler by delegating to FromJSON.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error { return m.FromJSON(data) }
