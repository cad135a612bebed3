// Package orderedmultiset provides a multiset implementation backed by an
// XOR-linked, weight-balanced scapegoat tree, keeping distinct elements in
// sorted order while tracking how many times each was inserted.
package orderedmultiset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qntx/xortree/container"
	xcmp "github.com/qntx/xortree/cmp"
	"github.com/qntx/xortree/xortree"
)

// present is appended once per insertion, so a bucket's length is exactly
// the element's multiplicity.
var present = struct{}{}

// Multiset is an ordered multiset: every Insert of an element succeeds,
// incrementing that element's count rather than being rejected as a
// duplicate.
//
// Multiset is not safe for concurrent use without external synchronization.
type Multiset[T any] struct {
	tree *xortree.Tree[T, struct{}]
}

// New creates a multiset ordered by the built-in comparator for T, with
// optional initial values.
//
// Time complexity: O(v log v), v the number of initial values.
func New[T xcmp.Ordered](values ...T) *Multiset[T] {
	return NewWith(xcmp.Compare[T], values...)
}

// NewWith creates a multiset ordered by a custom comparator, with optional
// initial values.
//
// Time complexity: O(v log v), v the number of initial values.
func NewWith[T any](comparator xcmp.Comparator[T], values ...T) *Multiset[T] {
	s := &Multiset[T]{tree: xortree.NewWith[T, struct{}](comparator)}
	s.Insert(values...)

	return s
}

// Comparator returns the comparator the multiset was constructed with.
func (s *Multiset[T]) Comparator() xcmp.Comparator[T] { return s.tree.Comparator }

// Insert adds one or more occurrences of the given elements.
//
// Time complexity: O(log n) amortized per element.
func (s *Multiset[T]) Insert(values ...T) {
	for _, v := range values {
		ref, _ := s.tree.Emplace(v)
		s.tree.AppendBucket(ref, present)
	}
}

// Count returns the number of times v has been inserted.
//
// Time complexity: O(log n) amortized.
func (s *Multiset[T]) Count(v T) int {
	ref, found := s.tree.Find(v)
	if !found {
		return 0
	}

	return s.tree.BucketLen(ref)
}

// Contains reports whether every given element has at least one occurrence.
// Returns true if no elements are given.
//
// Time complexity: O(log n) amortized per element.
func (s *Multiset[T]) Contains(values ...T) bool {
	for _, v := range values {
		if _, found := s.tree.Find(v); !found {
			return false
		}
	}

	return true
}

// EraseAll removes every occurrence of v, returning the number removed.
//
// Time complexity: O(log n) amortized.
func (s *Multiset[T]) EraseAll(v T) int {
	return s.tree.DeleteKey(v)
}

// EraseOne removes a single occurrence of v, reporting whether one was
// present.
//
// Time complexity: O(log n) amortized.
func (s *Multiset[T]) EraseOne(v T) bool {
	ref, found := s.tree.Find(v)
	if !found {
		return false
	}

	if s.tree.BucketLen(ref) == 1 {
		s.tree.DeleteKey(v)
	} else {
		s.tree.RemoveBucketAt(ref, 0)
	}

	return true
}

// LowerBound returns the least distinct element not less than v.
//
// Time complexity: O(log n) amortized.
func (s *Multiset[T]) LowerBound(v T) (T, bool) {
	ref, _, ok := s.tree.LowerBound(v)
	if !ok {
		var zero T

		return zero, false
	}

	return s.tree.Key(ref), true
}

// UpperBound returns the least distinct element strictly greater than v.
//
// Time complexity: O(log n) amortized.
func (s *Multiset[T]) UpperBound(v T) (T, bool) {
	ref, _, ok := s.tree.UpperBound(v)
	if !ok {
		var zero T

		return zero, false
	}

	return s.tree.Key(ref), true
}

// EqualRange returns a pair of iterators bounding the range of distinct
// elements equal to v under the multiset's comparator. lo is positioned at
// that element if present, otherwise at its lower bound; hi is always
// positioned just past it. Bucket at lo gives every occurrence of v.
//
// Time complexity: O(log n) amortized.
func (s *Multiset[T]) EqualRange(v T) (lo, hi *xortree.Iterator[T, struct{}]) {
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

// Empty reports whether the multiset holds no elements.
//
// Time complexity: O(1).
func (s *Multiset[T]) Empty() bool { return s.tree.Empty() }

// DistinctLen returns the number of distinct elements.
//
// Time complexity: O(1).
func (s *Multiset[T]) DistinctLen() int { return s.tree.Len() }

// Len returns the total number of elements, counting every occurrence.
//
// Time complexity: O(n).
func (s *Multiset[T]) Len() int { return len(s.tree.Values()) }

// Clear removes every element.
//
// Time complexity: O(1).
func (s *Multiset[T]) Clear() { s.tree.Clear() }

// Values returns every element in ascending order, each repeated once per
// occurrence.
//
// Time complexity: O(n).
func (s *Multiset[T]) Values() []T {
	keys, _ := s.tree.KeysAndValues()

	return keys
}

// DistinctValues returns each distinct element once, in ascending order.
//
// Time complexity: O(n).
func (s *Multiset[T]) DistinctValues() []T { return s.tree.Keys() }

// Iterator returns an iterator over distinct elements, positioned before
// the first one. Bucket's length gives the current element's multiplicity.
//
// Time complexity: O(1).
func (s *Multiset[T]) Iterator() *xortree.Iterator[T, struct{}] { return s.tree.Iterator() }

// String returns a string representation of the multiset.
func (s *Multiset[T]) String() string {
	var b strings.Builder

	b.WriteString("Multiset\n")

	it := s.tree.Iterator()
	for it.Next() {
		fmt.Fprintf(&b, "%v x%d\n", it.Key(), len(it.Bucket()))
	}

	return b.String()
}

// --------------------------------------------------------------------------------
// JSON serialization

// Predefined errors for JSON operations.
var (
	ErrMarshalJSONFailure   = errors.New("failed to marshal multiset to JSON")
	ErrUnmarshalJSONFailure = errors.New("failed to unmarshal JSON into multiset")
)

// Ensure Multiset implements the expected serialization interfaces at
// compile time.
var (
	_ container.JSONSerializer   = (*Multiset[string])(nil)
	_ container.JSONDeserializer = (*Multiset[string])(nil)
	_ json.Marshaler             = (*Multiset[string])(nil)
	_ json.Unmarshaler           = (*Multiset[string])(nil)
)

// ToJSON serializes the multiset into a JSON array, each element repeated
// once per occurrence.
//
// Time complexity: O(n).
func (s *Multiset[T]) ToJSON() ([]byte, error) {
	data, err := json.Marshal(s.Values())
	if err != nil {
		return nil, fmt.Errorf("orderedmultiset: %w: %w", ErrMarshalJSONFailure, err)
	}

	return data, nil
}

// FromJSON populates the multiset from a JSON array, clearing it first.
//
// Time complexity: O(n log n).
func (s *Multiset[T]) FromJSON(data []byte) error {
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("orderedmultiset: %w: %w", ErrUnmarshalJSONFailure, err)
	}

	s.Clear()
	s.Insert(values...)

	return nil
}

// MarshalJSON implements json.Marshaler by delegating to ToJSON.
func (s *Multiset[T]) MarshalJSON() ([]byte, error) { return s.ToJSON() }

// UnmarshalJSON implements json.Unmarshaler by delegating to FromJSON.
func (s *Multiset[T]) UnmarshalJSON(data []byte) error { return s.FromJSON(data) }
