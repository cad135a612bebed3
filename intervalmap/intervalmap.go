// Package intervalmap implements an augmented ordered container mapping
// half-open intervals [Lo, Hi) to values, with overlap queries answered in
// roughly O(log n + k) time for k matches.
//
// It is built directly on top of package xortree: the tree orders entries
// by interval low endpoint, and a parallel per-node "subtree maximum high
// endpoint" is maintained alongside it, letting Any and All prune whole
// subtrees whose intervals cannot possibly reach far enough to overlap the
// query.
package intervalmap

import (
	xcmp "github.com/qntx/xortree/cmp"
	"github.com/qntx/xortree/internal/xlink"
	"github.com/qntx/xortree/xortree"
)

// Interval is a half-open range [Lo, Hi). Two intervals overlap when
// a.Lo < b.Hi && b.Lo < a.Hi.
type Interval[T any] struct {
	Lo T
	Hi T
}

// entry is what a node's bucket actually holds: since the tree orders
// nodes by Lo alone, every interval sharing a Lo value lands in the same
// node's bucket, distinguished by its own Hi and payload.
type entry[T any, V any] struct {
	hi    T
	value V
}

// IntervalMap maps intervals to values, keyed by low endpoint, with
// duplicate low endpoints bucketed at a single node in insertion order.
//
// IntervalMap is not safe for concurrent use without external
// synchronization.
type IntervalMap[T any, V any] struct {
	tree   *xortree.Tree[T, entry[T, V]]
	cmp    xcmp.Comparator[T]
	subMax map[xlink.Ref]T
}

// New creates an empty IntervalMap ordered by the built-in comparator for T.
//
// Time complexity: O(1).
func New[T xcmp.Ordered, V any]() *IntervalMap[T, V] {
	return NewWith[T, V](xcmp.Compare[T])
}

// NewWith creates an empty IntervalMap ordered by a custom comparator over
// endpoints.
//
// Time complexity: O(1).
func NewWith[T any, V any](comparator xcmp.Comparator[T]) *IntervalMap[T, V] {
	return &IntervalMap[T, V]{
		tree:   xortree.NewWith[T, entry[T, V]](comparator),
		cmp:    comparator,
		subMax: map[xlink.Ref]T{},
	}
}

// --------------------------------------------------------------------------------
// Mutation

// Insert adds value under interval iv. Multiple values may be inserted
// under intervals sharing the same Lo; each is kept, in insertion order.
//
// Time complexity: O(log n) amortized for the tree insert, plus O(n) to
// refresh the subtree-maximum augmentation — see the package-level note in
// DESIGN.md on why this refresh is not narrowed to the affected path.
func (m *IntervalMap[T, V]) Insert(iv Interval[T], value V) {
	ref, _ := m.tree.Emplace(iv.Lo)
	m.tree.AppendBucket(ref, entry[T, V]{hi: iv.Hi, value: value})
	m.recomputeAll()
}

// Remove deletes the first entry whose interval equals iv exactly (both
// endpoints), returning whether one was found.
//
// Time complexity: O(log n) amortized plus an O(n) augmentation refresh.
func (m *IntervalMap[T, V]) Remove(iv Interval[T]) bool {
	ref, found := m.tree.Find(iv.Lo)
	if !found {
		return false
	}

	bucket := m.tree.Bucket(ref)
	for i, e := range bucket {
		if m.cmp(e.hi, iv.Hi) != 0 {
			continue
		}

		if len(bucket) == 1 {
			m.tree.DeleteKey(iv.Lo)
		} else {
			m.tree.RemoveBucketAt(ref, i)
		}

		m.recomputeAll()

		return true
	}

	return false
}

// EraseAll removes every interval sharing the low endpoint lo, returning
// the number of entries removed.
//
// Time complexity: O(log n) amortized plus an O(n) augmentation refresh.
func (m *IntervalMap[T, V]) EraseAll(lo T) int {
	removed := m.tree.DeleteKey(lo)
	if removed > 0 {
		m.recomputeAll()
	}

	return removed
}

// Clear removes every interval.
//
// Time complexity: O(1).
func (m *IntervalMap[T, V]) Clear() {
	m.tree.Clear()
	m.subMax = map[xlink.Ref]T{}
}

// --------------------------------------------------------------------------------
// Queries

// Count returns the number of entries stored under the exact interval iv,
// matching both endpoints. Duplicate (Lo, Hi) pairs are permitted, so this
// can be greater than one.
//
// Time complexity: O(log n) amortized.
func (m *IntervalMap[T, V]) Count(iv Interval[T]) int {
	ref, found := m.tree.Find(iv.Lo)
	if !found {
		return 0
	}

	n := 0

	for _, e := range m.tree.Bucket(ref) {
		if m.cmp(e.hi, iv.Hi) == 0 {
			n++
		}
	}

	return n
}

// CountAt returns the number of entries stored under low endpoint lo,
// regardless of their high endpoint.
//
// Time complexity: O(log n) amortized.
func (m *IntervalMap[T, V]) CountAt(lo T) int {
	ref, found := m.tree.Find(lo)
	if !found {
		return 0
	}

	return m.tree.BucketLen(ref)
}

// Len returns the total number of intervals stored, counting every bucket
// entry.
//
// Time complexity: O(n).
func (m *IntervalMap[T, V]) Len() int {
	total := 0

	n, p, ok := m.tree.First()
	for ok {
		total += m.tree.BucketLen(n)
		n, p, ok = m.tree.Next(n, p)
	}

	return total
}

// Empty reports whether the map holds no intervals.
//
// Time complexity: O(1).
func (m *IntervalMap[T, V]) Empty() bool { return m.tree.Empty() }

// Any reports whether any stored interval overlaps query. Intervals are
// half-open; a degenerate query (Lo == Hi) matches a stored interval that
// touches it at a single point, mirroring std::ranges style point lookups.
//
// Time complexity: O(log n + k) typical, O(n) worst case, where k is the
// number of overlapping candidates examined before a match is found.
func (m *IntervalMap[T, V]) Any(query Interval[T]) bool {
	eq := m.cmp(query.Lo, query.Hi) == 0

	n, p := m.tree.Root(), xlink.Ref(0)
	if n == xlink.Null || !(m.cmp(query.Lo, m.subMax[n]) < 0) {
		return false
	}

	for {
		key := m.tree.Key(n)
		c := m.cmp(query.Hi, key)
		cg0 := c > 0

		if cg0 || (eq && c == 0) {
			for _, e := range m.tree.Bucket(n) {
				if m.cmp(query.Lo, e.hi) < 0 {
					return true
				}
			}
		}

		if l := m.tree.LeftChild(n, p); l != xlink.Null && m.cmp(query.Lo, m.subMax[l]) < 0 {
			p, n = n, l
		} else if r := m.tree.RightChild(n, p); cg0 && r != xlink.Null && m.cmp(query.Lo, m.subMax[r]) < 0 {
			p, n = n, r
		} else {
			return false
		}
	}
}

// All calls yield once for every stored interval overlapping query, in no
// particular order, stopping early if yield returns false.
//
// Time complexity: O(log n + k), k the number of overlapping intervals
// reported, worst case O(n).
func (m *IntervalMap[T, V]) All(query Interval[T], yield func(Interval[T], V) bool) {
	eq := m.cmp(query.Lo, query.Hi) == 0

	var walk func(n, p xlink.Ref) bool

	walk = func(n, p xlink.Ref) bool {
		if n == xlink.Null || !(m.cmp(query.Lo, m.subMax[n]) < 0) {
			return true
		}

		key := m.tree.Key(n)
		c := m.cmp(query.Hi, key)
		cg0 := c > 0

		if cg0 || (eq && c == 0) {
			for _, e := range m.tree.Bucket(n) {
				if m.cmp(query.Lo, e.hi) < 0 {
					if !yield(Interval[T]{Lo: key, Hi: e.hi}, e.value) {
						return false
					}
				}
			}

			if cg0 && !walk(m.tree.RightChild(n, p), n) {
				return false
			}
		}

		return walk(m.tree.LeftChild(n, p), n)
	}

	walk(m.tree.Root(), xlink.Null)
}

// --------------------------------------------------------------------------------
// Augmentation maintenance

func (m *IntervalMap[T, V]) bucketMax(ref xlink.Ref) T {
	bucket := m.tree.Bucket(ref)
	best := bucket[0].hi

	for _, e := range bucket[1:] {
		if m.cmp(best, e.hi) < 0 {
			best = e.hi
		}
	}

	return best
}

// recomputeAll rebuilds the subtree-maximum augmentation for every node
// from scratch. A scapegoat rebuild can reshape an arbitrarily large
// subtree on insertion, and deletion always reshapes at least the
// donor-splice neighbourhood, so narrowing this refresh to "the path just
// touched" would require the tree to report exactly which nodes a rebuild
// relocated. The engine does not do that, and a full post-order walk is a
// deliberately simple, always-correct substitute; see DESIGN.md.
func (m *IntervalMap[T, V]) recomputeAll() {
	m.subMax = make(map[xlink.Ref]T, m.tree.Len())

	m.tree.PostOrder(m.tree.Root(), xlink.Null, func(ref, parent xlink.Ref) {
		best := m.bucketMax(ref)

		if l := m.tree.LeftChild(ref, parent); l != xlink.Null {
			if lm := m.subMax[l]; m.cmp(best, lm) < 0 {
				best = lm
			}
		}

		if r := m.tree.RightChild(ref, parent); r != xlink.Null {
			if rm := m.subMax[r]; m.cmp(best, rm) < 0 {
				best = rm
			}
		}

		m.subMax[ref] = best
	})
}
