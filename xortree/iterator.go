// Package xortree provides an iterator for traversing the tree.
//
// This file implements a stateful, bidirectional iterator over a Tree's
// nodes. Unlike a parent-linked tree, the underlying structure has no
// stored parent pointers, so the iterator itself carries the one piece of
// state traversal needs to climb back up: the current node's parent.
package xortree

import (
	"errors"

	"github.com/qntx/xortree/internal/xlink"
)

// position records where an Iterator sits relative to the tree's elements.
type position byte

const (
	begin   position = iota // Before the first element.
	between                 // At a valid element.
	end                     // Past the last element.
)

// ErrInvalidIteratorPosition is returned (via panic) when Key, Value, or
// Bucket is called while the iterator is not positioned at an element.
var ErrInvalidIteratorPosition = errors.New("iterator accessed at invalid position")

// Iterator provides forward and reverse traversal over a Tree's nodes, one
// stop per distinct key. A node holding a multi-entry bucket is visited
// once; Bucket returns every value stored there.
//
// The iterator itself never mutates the tree. To remove the current element
// and continue, pass Ref's cursor to Tree.DeleteCursor and position a new
// iterator at the returned successor with Tree.IteratorAt.
type Iterator[K any, V any] struct {
	tree     *Tree[K, V]
	node     xlink.Ref
	parent   xlink.Ref
	position position
}

// Iterator creates a new iterator positioned before the first element.
//
// Time complexity: O(1).
func (t *Tree[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{tree: t, position: begin}
}

// IteratorAt creates a new iterator positioned at a specific node, given
// its parent. Used by callers that already hold a cursor from
// FindWithParent, LowerBound, UpperBound or DeleteCursor.
//
// Time complexity: O(1).
func (t *Tree[K, V]) IteratorAt(node, parent xlink.Ref) *Iterator[K, V] {
	return &Iterator[K, V]{tree: t, node: node, parent: parent, position: between}
}

// Next advances the iterator to the next node in ascending key order.
//
// Returns true if the iterator now sits at a valid element, false if it has
// reached the end. Time complexity: O(log n) amortized.
func (it *Iterator[K, V]) Next() bool {
	switch it.position {
	case end:
		return false
	case begin:
		if n, p, ok := it.tree.First(); ok {
			it.node, it.parent, it.position = n, p, between

			return true
		}

		it.position = end

		return false
	case between:
		if n, p, ok := it.tree.Next(it.node, it.parent); ok {
			it.node, it.parent = n, p

			return true
		}
	}

	it.node, it.parent, it.position = xlink.Null, xlink.Null, end

	return false
}

// Prev moves the iterator to the previous node in ascending key order.
//
// Returns true if the iterator now sits at a valid element, false if it has
// reached the beginning. Time complexity: O(log n) amortized.
func (it *Iterator[K, V]) Prev() bool {
	switch it.position {
	case begin:
		return false
	case end:
		if n, p, ok := it.tree.Last(); ok {
			it.node, it.parent, it.position = n, p, between

			return true
		}

		it.position = begin

		return false
	case between:
		if n, p, ok := it.tree.Prev(it.node, it.parent); ok {
			it.node, it.parent = n, p

			return true
		}
	}

	it.node, it.parent, it.position = xlink.Null, xlink.Null, begin

	return false
}

// Key returns the current element's key.
//
// Panics if the iterator is not positioned at an element. Time complexity: O(1).
func (it *Iterator[K, V]) Key() K {
	if !it.valid() {
		panic("xortree: " + ErrInvalidIteratorPosition.Error())
	}

	return it.tree.Key(it.node)
}

// Value returns the first value in the current element's bucket. For
// unique-key facades this is the only value; multi-key facades should use
// Bucket instead.
//
// Panics if the iterator is not positioned at an element, or if the
// current bucket is empty. Time complexity: O(1).
func (it *Iterator[K, V]) Value() V {
	return it.Bucket()[0]
}

// Bucket returns every value stored at the current element, in insertion
// order.
//
// Panics if the iterator is not positioned at an element. Time complexity: O(1).
func (it *Iterator[K, V]) Bucket() []V {
	if !it.valid() {
		panic("xortree: " + ErrInvalidIteratorPosition.Error())
	}

	return it.tree.Bucket(it.node)
}

// Ref returns the current node's ref and parent, for callers that need to
// hand a cursor to Tree.DeleteCursor or a facade-level removal method.
//
// Time complexity: O(1).
func (it *Iterator[K, V]) Ref() (node, parent xlink.Ref) {
	return it.node, it.parent
}

// Begin resets the iterator to before the first element.
//
// Time complexity: O(1).
func (it *Iterator[K, V]) Begin() {
	it.node, it.parent, it.position = xlink.Null, xlink.Null, begin
}

// End moves the iterator past the last element.
//
// Time complexity: O(1).
func (it *Iterator[K, V]) End() {
	it.node, it.parent, it.position = xlink.Null, xlink.Null, end
}

// First moves the iterator to the first element.
//
// Returns true if the tree is non-empty. Time complexity: O(log n) amortized.
func (it *Iterator[K, V]) First() bool {
	it.Begin()

	return it.Next()
}

// Last moves the iterator to the last element.
//
// Returns true if the tree is non-empty. Time complexity: O(log n) amortized.
func (it *Iterator[K, V]) Last() bool {
	it.End()

	return it.Prev()
}

// NextTo advances to the next element satisfying f.
//
// Time complexity: O(n) worst case.
func (it *Iterator[K, V]) NextTo(f func(key K, bucket []V) bool) bool {
	for it.Next() {
		if f(it.Key(), it.Bucket()) {
			return true
		}
	}

	return false
}

// PrevTo moves to the previous element satisfying f.
//
// Time complexity: O(n) worst case.
func (it *Iterator[K, V]) PrevTo(f func(key K, bucket []V) bool) bool {
	for it.Prev() {
		if f(it.Key(), it.Bucket()) {
			return true
		}
	}

	return false
}

// valid reports whether the iterator currently sits at an element.
func (it *Iterator[K, V]) valid() bool {
	return it.position == between
}
