// Package orderedset provides a set implementation backed by an
// XOR-linked, weight-balanced scapegoat tree, keeping elements in sorted
// order.
package orderedset

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/qntx/xortree/container"
	xcmp "github.com/qntx/xortree/cmp"
	"github.com/qntx/xortree/xortree"
)

// present is a marker for set membership; the underlying tree's value type
// carries no information of its own.
var present = struct{}{}

// Set is an ordered set of elements. Time complexity: O(log n) amortized for
// Add, Remove, and Contains.
//
// Set is not safe for concurrent use without external synchronization.
type Set[T any] struct {
	tree *xortree.Tree[T, struct{}]
}

// New creates a set ordered by the built-in comparator for T, with optional
// initial values.
//
// Time complexity: O(v log v), v the number of initial values.
func New[T xcmp.Ordered](values ...T) *Set[T] {
	return NewWith(xcmp.Compare[T], values...)
}

// NewWith creates a set ordered by a custom comparator, with optional
// initial values.
//
// Time complexity: O(v log v), v the number of initial values.
func NewWith[T any](comparator xcmp.Comparator[T], values ...T) *Set[T] {
	s := &Set[T]{tree: xortree.NewWith[T, struct{}](comparator)}
	s.Add(values...)

	return s
}

// Comparator returns the comparator the set was constructed with.
func (s *Set[T]) Comparator() xcmp.Comparator[T] { return s.tree.Comparator }

// Add inserts one or more elements into the set.
//
// Time complexity: O(log n) amortized per element.
func (s *Set[T]) Add(values ...T) {
	for _, v := range values {
		ref, _ := s.tree.Emplace(v)
		s.tree.SetBucket(ref, []struct{}{present})
	}
}

// Remove deletes one or more elements from the set.
//
// Time complexity: O(log n) amortized per element.
func (s *Set[T]) Remove(values ...T) {
	for _, v := range values {
		s.tree.DeleteKey(v)
	}
}

// Contains reports whether every given element is present. Returns true if
// no elements are given, since a set is a superset of the empty set.
//
// Time complexity: O(log n) amortized per element.
func (s *Set[T]) Contains(values ...T) bool {
	for _, v := range values {
		if _, found := s.tree.Find(v); !found {
			return false
		}
	}

	return true
}

// LowerBound returns the least element not less than v.
//
// Time complexity: O(log n) amortized.
func (s *Set[T]) LowerBound(v T) (T, bool) {
	ref, _, ok := s.tree.LowerBound(v)
	if !ok {
		var zero T

		return zero, false
	}

	return s.tree.Key(ref), true
}

// UpperBound returns the least element strictly greater than v.
//
// Time complexity: O(log n) amortized.
func (s *Set[T]) UpperBound(v T) (T, bool) {
	ref, _, ok := s.tree.UpperBound(v)
	if !ok {
		var zero T

		return zero, false
	}

	return s.tree.Key(ref), true
}

// EqualRange returns a pair of iterators bounding the range of elements
// equal to v under the set's comparator — at most one, since Set enforces
// uniqueness. lo is positioned at that element if present, otherwise at
// its lower bound; hi is always positioned just past it.
//
// Time complexity: O(log n) amortized.
func (s *Set[T]) EqualRange(v T) (lo, hi *xortree.Iterator[T, struct{}]) {
	if loRef, loParent, ok := s.tree.LowerBound(v); ok {
		lo = s.tree.IteratorAt(loRef, loParent)
	} else {
		lo = s.tree.Iterator()
		lo.End()
	}

	if hiRef, hiParent, ok := s.tree.UpperBound(v); ok {
		hi = s.tree.IteratorAt(hiRef, hiParent)
	} else {
		hi = s.tree.Iterator()
		hi.End()
	}

	return lo, hi
}

// Empty reports whether the set holds no elements.
//
// Time complexity: O(1).
func (s *Set[T]) Empty() bool { return s.tree.Empty() }

// Len returns the number of elements in the set.
//
// Time complexity: O(1).
func (s *Set[T]) Len() int { return s.tree.Len() }

// Clear removes all elements.
//
// Time complexity: O(1).
func (s *Set[T]) Clear() { s.tree.Clear() }

// Values returns a slice of all elements in ascending order.
//
// Time complexity: O(n).
func (s *Set[T]) Values() []T { return s.tree.Keys() }

// Iterator returns an iterator over the set's elements, positioned before
// the first one.
//
// Time complexity: O(1).
func (s *Set[T]) Iterator() *xortree.Iterator[T, struct{}] { return s.tree.Iterator() }

// String returns a string representation of the set.
func (s *Set[T]) String() string {
	var b strings.Builder

	b.WriteString("Set\n")

	it := s.tree.Iterator()
	for it.Next() {
		fmt.Fprintf(&b, "%v\n", it.Key())
	}

	return b.String()
}

// sameComparator reports whether two sets were built with the exact same
// comparator function, the condition under which a set-algebra result is
// meaningful. Ref: https://en.wikipedia.org/wiki/Algebra_of_sets
func sameComparator[T any](a, b *Set[T]) bool {
	return reflect.ValueOf(a.Comparator()).Pointer() == reflect.ValueOf(b.Comparator()).Pointer()
}

// Intersection returns a new set containing elements present in both s and
// other. Returns an empty set if the two sets were built with different
// comparators.
//
// Time complexity: O(min(m, n) log max(m, n)).
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	res := NewWith(s.Comparator())
	if !sameComparator(s, other) {
		return res
	}

	src, dst := s, other
	if s.Len() > other.Len() {
		src, dst = other, s
	}

	it := src.Iterator()
	for it.Next() {
		if dst.Contains(it.Key()) {
			res.Add(it.Key())
		}
	}

	return res
}

// Union returns a new set containing every element from s or other. Returns
// an empty set if the two sets were built with different comparators.
//
// Time complexity: O((m + n) log(m + n)).
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	res := NewWith(s.Comparator())
	if !sameComparator(s, other) {
		return res
	}

	res.Add(s.Values()...)
	res.Add(other.Values()...)

	return res
}

// Difference returns a new set containing elements in s but not in other.
// Returns an empty set if the two sets were built with different
// comparators.
//
// Time complexity: O(m log m), m = s.Len().
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	res := NewWith(s.Comparator())
	if !sameComparator(s, other) {
		return res
	}

	it := s.Iterator()
	for it.Next() {
		if !other.Contains(it.Key()) {
			res.Add(it.Key())
		}
	}

	return res
}

// --------------------------------------------------------------------------------
// JSON serialization

// Predefined errors for JSON operations.
var (
	ErrMarshalJSONFailure   = errors.New("failed to marshal set to JSON")
	ErrUnmarshalJSONFailure = errors.New("failed to unmarshal JSON into set")
)

// Ensure Set implements the expected serialization interfaces at compile time.
var (
	_ container.JSONSerializer   = (*Set[string])(nil)
	_ container.JSONDeserializer = (*Set[string])(nil)
	_ json.Marshaler             = (*Set[string])(nil)
	_ json.Unmarshaler           = (*Set[string])(nil)
)

// ToJSON serializes the set into a JSON array.
//
// Time complexity: O(n).
func (s *Set[T]) ToJSON() ([]byte, error) {
	data, err := json.Marshal(s.Values())
	if err != nil {
		return nil, fmt.Errorf("orderedset: %w: %w", ErrMarshalJSONFailure, err)
	}

	return data, nil
}

// FromJSON populates the set from a JSON array, clearing it first.
//
// Time complexity: O(n log n).
func (s *Set[T]) FromJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("orderedset: %w: %w", ErrUnmarshalJSONFailure, err)
	}

	s.Clear()
	s.Add(values...)

	return nil
}

// MarshalJSON implements json.Marshaler by delegating to ToJSON.
func (s *Set[T]) MarshalJSON() ([]byte, error) { return s.ToJSON() }

// UnmarshalJSON implements json.Unmarshaler by delegating to FromJSON.
func (s *Set[T]) UnmarshalJSON(data []byte) error { return s.FromJSON(data) }
