// Package xortree implements the weight-balanced scapegoat tree shared by
// every ordered container in this module.
//
// Each node stores only two link words instead of the usual three pointers
// (left, right, parent): linkL folds together a node's parent and its left
// child via XOR, and linkR does the same for the parent and the right
// child. Recovering the "other" side of a link during a traversal costs one
// XOR against whichever neighbour the walk is currently holding — see
// package xlink. Because Go cannot safely XOR raw pointers under a moving
// garbage collector, nodes live in a growable arena (a slice) and are
// addressed by the stable index type xlink.Ref rather than by pointer.
//
// The tree rebalances only on insertion. An insert that leaves some
// ancestor's subtree weights outside the 1:2 ratio triggers a rebuild of
// that ancestor's subtree into a perfectly balanced shape; deletions never
// rebuild, matching the scapegoat discipline the whole module relies on.
//
// Every node carries a bucket (a slice of values) rather than a single
// value. Unique-key containers (orderedset, orderedmap) cap a bucket at one
// entry at the facade boundary; multi-key containers (orderedmultiset,
// orderedmultimap) let a bucket grow to hold every value inserted under an
// equal key, in insertion order. The engine itself enforces no cap.
package xortree

import (
	"errors"
	"fmt"
	"strings"

	xcmp "github.com/qntx/xortree/cmp"
	"github.com/qntx/xortree/internal/xlink"
)

// --------------------------------------------------------------------------------
// Constants and Errors

// ErrInvalidKeyType is returned (wrapped, then re-panicked) when a
// comparator call panics — almost always a sign that K does not actually
// support the ordering the comparator assumes.
var ErrInvalidKeyType = errors.New("key type does not match comparator")

// Ref identifies a node within a Tree's arena. The zero value never refers
// to a live node.
type Ref = xlink.Ref

// side records which child slot of a parent node a given node occupies.
// It exists purely to pick linkL vs linkR when rewriting a parent's link;
// it is never stored in a node.
type side int8

const (
	sideNone side = iota
	sideLeft
	sideRight
)

// --------------------------------------------------------------------------------
// Types

// node is one element of the arena. bucket holds every value inserted
// under key, in insertion order.
type node[K any, V any] struct {
	key    K
	bucket []V
	linkL  xlink.Ref
	linkR  xlink.Ref
}

// Tree is an XOR-linked, weight-balanced scapegoat tree over an arena of
// node[K, V]. The zero value is not usable; construct with New or NewWith.
//
// K need not be comparable in the Go sense — ordering is entirely delegated
// to Comparator. Tree is not safe for concurrent use without external
// synchronization.
type Tree[K any, V any] struct {
	nodes      []node[K, V]
	free       []xlink.Ref
	root       xlink.Ref
	count      int // number of distinct-key nodes, i.e. excluding bucket depth
	Comparator xcmp.Comparator[K]
}

// --------------------------------------------------------------------------------
// Constructors

// New creates an empty tree ordered by the built-in comparator for K.
//
// Time complexity: O(1).
func New[K xcmp.Ordered, V any]() *Tree[K, V] {
	return NewWith[K, V](xcmp.Compare[K])
}

// NewWith creates an empty tree ordered by a custom comparator.
//
// Time complexity: O(1).
func NewWith[K any, V any](comparator xcmp.Comparator[K]) *Tree[K, V] {
	return &Tree[K, V]{
		Comparator: comparator,
		nodes:      make([]node[K, V], 1), // slot 0 is the permanent null sentinel
	}
}

// --------------------------------------------------------------------------------
// Arena

func (t *Tree[K, V]) alloc(key K) xlink.Ref {
	if n := len(t.free); n > 0 {
		ref := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[ref] = node[K, V]{key: key}

		return ref
	}

	t.nodes = append(t.nodes, node[K, V]{key: key})

	return xlink.Ref(len(t.nodes) - 1)
}

func (t *Tree[K, V]) release(ref xlink.Ref) {
	t.nodes[ref] = node[K, V]{}
	t.free = append(t.free, ref)
}

func (t *Tree[K, V]) newLeaf(key K, parent xlink.Ref) xlink.Ref {
	ref := t.alloc(key)
	t.nodes[ref].linkL = xlink.Encode(parent, xlink.Null)
	t.nodes[ref].linkR = xlink.Encode(parent, xlink.Null)

	return ref
}

// --------------------------------------------------------------------------------
// Link decoding

// decodeL, given n and a neighbour known relative to n's linkL field
// (ordinarily n's parent, while descending), returns the other neighbour
// (ordinarily n's left child). Supplying n's left child instead recovers
// n's parent — the same trick traversal uses to climb without stored
// parent pointers.
func (t *Tree[K, V]) decodeL(n, known xlink.Ref) xlink.Ref {
	return xlink.Decode(t.nodes[n].linkL, known)
}

// decodeR mirrors decodeL for the right side.
func (t *Tree[K, V]) decodeR(n, known xlink.Ref) xlink.Ref {
	return xlink.Decode(t.nodes[n].linkR, known)
}

// --------------------------------------------------------------------------------
// Comparator safety

// compare wraps the user comparator so a panic inside it (e.g. a type
// assertion failure in a hand-written comparator) surfaces as
// ErrInvalidKeyType instead of an opaque runtime panic.
func (t *Tree[K, V]) compare(a, b K) (c int) {
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Errorf("xortree: %w: %v", ErrInvalidKeyType, r))
		}
	}()

	return t.Comparator(a, b)
}

// --------------------------------------------------------------------------------
// Lookup

// Find locates the node holding key.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) Find(key K) (ref xlink.Ref, found bool) {
	ref, _, found = t.FindWithParent(key)

	return ref, found
}

// FindWithParent locates the node holding key and also returns its parent,
// for callers that need a cursor rather than a bare ref.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) FindWithParent(key K) (ref, parent xlink.Ref, found bool) {
	n, p := t.root, xlink.Null

	for n != xlink.Null {
		switch c := t.compare(key, t.nodes[n].key); {
		case c < 0:
			n, p = t.decodeL(n, p), n
		case c > 0:
			n, p = t.decodeR(n, p), n
		default:
			return n, p, true
		}
	}

	return xlink.Null, xlink.Null, false
}

// Floor returns the node with the greatest key less than or equal to key.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) Floor(key K) (ref xlink.Ref, found bool) {
	n, p := t.root, xlink.Null

	var bestN xlink.Ref

	for n != xlink.Null {
		switch c := t.compare(t.nodes[n].key, key); {
		case c == 0:
			return n, true
		case c < 0:
			bestN, found = n, true
			n, p = t.decodeR(n, p), n
		default:
			n, p = t.decodeL(n, p), n
		}
	}

	return bestN, found
}

// Ceiling returns the node with the least key greater than or equal to key.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) Ceiling(key K) (ref xlink.Ref, found bool) {
	n, p := t.root, xlink.Null

	var bestN xlink.Ref

	for n != xlink.Null {
		switch c := t.compare(t.nodes[n].key, key); {
		case c == 0:
			return n, true
		case c > 0:
			bestN, found = n, true
			n, p = t.decodeL(n, p), n
		default:
			n, p = t.decodeR(n, p), n
		}
	}

	return bestN, found
}

// LowerBound returns the node holding the least key not less than key,
// along with its parent, for positioning an iterator there directly.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) LowerBound(key K) (ref, parent xlink.Ref, ok bool) {
	n, p := t.root, xlink.Null

	var bestN, bestP xlink.Ref

	for n != xlink.Null {
		switch c := t.compare(t.nodes[n].key, key); {
		case c == 0:
			return n, p, true
		case c > 0:
			bestN, bestP, ok = n, p, true
			n, p = t.decodeL(n, p), n
		default:
			n, p = t.decodeR(n, p), n
		}
	}

	return bestN, bestP, ok
}

// UpperBound returns the node holding the least key strictly greater than
// key, along with its parent.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) UpperBound(key K) (ref, parent xlink.Ref, ok bool) {
	n, p := t.root, xlink.Null

	var bestN, bestP xlink.Ref

	for n != xlink.Null {
		switch c := t.compare(t.nodes[n].key, key); {
		case c > 0:
			bestN, bestP, ok = n, p, true
			n, p = t.decodeL(n, p), n
		default:
			n, p = t.decodeR(n, p), n
		}
	}

	return bestN, bestP, ok
}

// --------------------------------------------------------------------------------
// Traversal

func (t *Tree[K, V]) firstWithParent(n, p xlink.Ref) (xlink.Ref, xlink.Ref) {
	for {
		l := t.decodeL(n, p)
		if l == xlink.Null {
			return n, p
		}

		p, n = n, l
	}
}

func (t *Tree[K, V]) lastWithParent(n, p xlink.Ref) (xlink.Ref, xlink.Ref) {
	for {
		r := t.decodeR(n, p)
		if r == xlink.Null {
			return n, p
		}

		p, n = n, r
	}
}

// First returns the leftmost node, i.e. the one holding the smallest key.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) First() (ref, parent xlink.Ref, ok bool) {
	if t.root == xlink.Null {
		return xlink.Null, xlink.Null, false
	}

	ref, parent = t.firstWithParent(t.root, xlink.Null)

	return ref, parent, true
}

// Last returns the rightmost node, i.e. the one holding the largest key.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) Last() (ref, parent xlink.Ref, ok bool) {
	if t.root == xlink.Null {
		return xlink.Null, xlink.Null, false
	}

	ref, parent = t.lastWithParent(t.root, xlink.Null)

	return ref, parent, true
}

// Next returns the in-order successor of the node n, whose parent is p.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) Next(n, p xlink.Ref) (nextRef, nextParent xlink.Ref, ok bool) {
	if r := t.decodeR(n, p); r != xlink.Null {
		nr, np := t.firstWithParent(r, n)

		return nr, np, true
	}

	for p != xlink.Null {
		if t.compare(t.nodes[n].key, t.nodes[p].key) < 0 {
			return p, t.decodeL(p, n), true
		}

		n, p = p, t.decodeR(p, n)
	}

	return xlink.Null, xlink.Null, false
}

// Prev returns the in-order predecessor of the node n, whose parent is p.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) Prev(n, p xlink.Ref) (prevRef, prevParent xlink.Ref, ok bool) {
	if l := t.decodeL(n, p); l != xlink.Null {
		pr, pp := t.lastWithParent(l, n)

		return pr, pp, true
	}

	for p != xlink.Null {
		if t.compare(t.nodes[n].key, t.nodes[p].key) > 0 {
			return p, t.decodeR(p, n), true
		}

		n, p = p, t.decodeL(p, n)
	}

	return xlink.Null, xlink.Null, false
}

// LeftChild returns n's left child, given n's parent p.
func (t *Tree[K, V]) LeftChild(n, p xlink.Ref) xlink.Ref { return t.decodeL(n, p) }

// RightChild returns n's right child, given n's parent p.
func (t *Tree[K, V]) RightChild(n, p xlink.Ref) xlink.Ref { return t.decodeR(n, p) }

// Root returns the ref of the tree's root, or xlink.Null if the tree is empty.
func (t *Tree[K, V]) Root() xlink.Ref { return t.root }

// PathTo returns the root-to-node path of refs leading to key, inclusive of
// both ends. If key is absent, the path ends at the last node visited by
// the search. No facade in this module calls it; intervalmap refreshes its
// subtree maxima with PostOrder instead.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) PathTo(key K) []xlink.Ref {
	var path []xlink.Ref

	n, p := t.root, xlink.Null

	for n != xlink.Null {
		path = append(path, n)

		switch c := t.compare(key, t.nodes[n].key); {
		case c < 0:
			n, p = t.decodeL(n, p), n
		case c > 0:
			n, p = t.decodeR(n, p), n
		default:
			return path
		}
	}

	return path
}

// PostOrder walks the subtree rooted at n (parent p) in post-order,
// children before parent, calling visit with each ref and its parent.
// Facades use it to recompute a bottom-up augmentation — an interval
// subtree maximum, for instance — after a mutation reshapes a subtree,
// since visit always sees a node's children before the node itself.
func (t *Tree[K, V]) PostOrder(n, p xlink.Ref, visit func(ref, parent xlink.Ref)) {
	if n == xlink.Null {
		return
	}

	t.PostOrder(t.decodeL(n, p), n, visit)
	t.PostOrder(t.decodeR(n, p), n, visit)
	visit(n, p)
}

func (t *Tree[K, V]) subtreeSize(n, p xlink.Ref) int {
	if n == xlink.Null {
		return 0
	}

	return 1 + t.subtreeSize(t.decodeL(n, p), n) + t.subtreeSize(t.decodeR(n, p), n)
}

// --------------------------------------------------------------------------------
// Insertion

// Emplace finds the node holding key, creating it (with an empty bucket)
// if absent. It is the sole insertion entry point; every facade builds
// Put/Add/Insert semantics on top of it by then reading or appending to the
// returned node's bucket.
//
// An insertion that unbalances some ancestor beyond the 2:1 weight ratio
// triggers a rebuild of that ancestor's subtree into a perfectly balanced
// shape. Lookups and in-order position are otherwise undisturbed.
//
// Time complexity: O(log n) amortized; O(log n) worst case for the lookup,
// with rebuilds contributing O(log n) amortized across a sequence of
// insertions.
func (t *Tree[K, V]) Emplace(key K) (ref xlink.Ref, created bool) {
	if t.root == xlink.Null {
		ref = t.newLeaf(key, xlink.Null)
		t.root = ref
		t.count++

		return ref, true
	}

	var leaf, leafParent xlink.Ref

	var rec func(n, p xlink.Ref, d side) int

	rec = func(n, p xlink.Ref, d side) int {
		var sl, sr int

		switch c := t.compare(key, t.nodes[n].key); {
		case c < 0:
			if l := t.decodeL(n, p); l != xlink.Null {
				if sz := rec(l, n, sideLeft); sz != 0 {
					sl = sz
				} else {
					return 0
				}
			} else {
				leaf = t.newLeaf(key, n)
				leafParent = n
				created = true
				t.nodes[n].linkL = xlink.Encode(leaf, p)
				sl = 1
			}

			sr = t.subtreeSize(t.decodeR(n, p), n)
		case c > 0:
			if r := t.decodeR(n, p); r != xlink.Null {
				if sz := rec(r, n, sideRight); sz != 0 {
					sr = sz
				} else {
					return 0
				}
			} else {
				leaf = t.newLeaf(key, n)
				leafParent = n
				created = true
				t.nodes[n].linkR = xlink.Encode(leaf, p)
				sr = 1
			}

			sl = t.subtreeSize(t.decodeL(n, p), n)
		default:
			leaf, leafParent = n, p

			return 0
		}

		total := 1 + sl + sr
		limit := 2 * total

		if 3*sl > limit || 3*sr > limit {
			rebuilt := t.rebuild(n, p, leaf, &leafParent)

			if p != xlink.Null {
				if d == sideLeft {
					t.nodes[p].linkL = xlink.Encode(rebuilt, t.decodeL(p, n))
				} else {
					t.nodes[p].linkR = xlink.Encode(rebuilt, t.decodeR(p, n))
				}
			} else {
				t.root = rebuilt
			}

			return 0
		}

		return total
	}

	rec(t.root, xlink.Null, sideNone)

	if created {
		t.count++
	}

	return leaf, created
}

// rebuild flattens the subtree rooted at n (whose external parent is p)
// into its in-order sequence, then rebuilds it as a perfectly balanced
// shape via recursive midpoint splitting, reattached under p. leaf is the
// ref of the node whose insertion triggered the rebuild; *leafParent is
// updated to that node's new parent, since the rebuild may relocate it.
//
// Time complexity: O(size of the subtree).
func (t *Tree[K, V]) rebuild(n, p, leaf xlink.Ref, leafParent *xlink.Ref) xlink.Ref {
	order := make([]xlink.Ref, 0, 64)

	var flatten func(n, p xlink.Ref)

	flatten = func(n, p xlink.Ref) {
		if n == xlink.Null {
			return
		}

		flatten(t.decodeL(n, p), n)
		order = append(order, n)
		flatten(t.decodeR(n, p), n)
	}

	flatten(n, p)

	var build func(parent xlink.Ref, a, b int) xlink.Ref

	build = func(parent xlink.Ref, a, b int) xlink.Ref {
		i := (a + b) / 2
		cur := order[i]

		if cur == leaf {
			*leafParent = parent
		}

		switch b - a {
		case 0:
			t.nodes[cur].linkL = xlink.Encode(parent, xlink.Null)
			t.nodes[cur].linkR = xlink.Encode(parent, xlink.Null)
		case 1:
			nb := order[b]
			t.nodes[nb].linkL = xlink.Encode(cur, xlink.Null)
			t.nodes[nb].linkR = xlink.Encode(cur, xlink.Null)
			t.nodes[cur].linkL = xlink.Encode(parent, xlink.Null)
			t.nodes[cur].linkR = xlink.Encode(nb, parent)

			if nb == leaf {
				*leafParent = cur
			}
		default:
			t.nodes[cur].linkL = xlink.Encode(build(cur, a, i-1), parent)
			t.nodes[cur].linkR = xlink.Encode(build(cur, i+1, b), parent)
		}

		return cur
	}

	return build(p, 0, len(order)-1)
}

// --------------------------------------------------------------------------------
// Bucket access

// Bucket returns the values stored at ref, in insertion order.
func (t *Tree[K, V]) Bucket(ref xlink.Ref) []V { return t.nodes[ref].bucket }

// BucketLen returns the number of values stored at ref.
func (t *Tree[K, V]) BucketLen(ref xlink.Ref) int { return len(t.nodes[ref].bucket) }

// SetBucket replaces the values stored at ref wholesale.
func (t *Tree[K, V]) SetBucket(ref xlink.Ref, bucket []V) { t.nodes[ref].bucket = bucket }

// AppendBucket appends v to the values stored at ref.
func (t *Tree[K, V]) AppendBucket(ref xlink.Ref, v V) {
	t.nodes[ref].bucket = append(t.nodes[ref].bucket, v)
}

// RemoveBucketAt removes the value at index idx from ref's bucket,
// preserving the order of the remaining values.
func (t *Tree[K, V]) RemoveBucketAt(ref xlink.Ref, idx int) {
	b := t.nodes[ref].bucket
	t.nodes[ref].bucket = append(b[:idx], b[idx+1:]...)
}

// Key returns the key stored at ref.
func (t *Tree[K, V]) Key(ref xlink.Ref) K { return t.nodes[ref].key }

// --------------------------------------------------------------------------------
// Deletion

// deleteAt removes the node n (parent p, grandparent pp) from the tree by
// XOR-relinking its neighbours, with no rebalancing. It returns the cursor
// (ref, parent) of n's in-order successor as it exists after the removal,
// so a live iterator positioned at n can continue from there.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) deleteAt(n, p, pp xlink.Ref) (nextRef, nextParent xlink.Ref) {
	nextRef, nextParent, _ = t.Next(n, p)

	l := t.decodeL(n, p)
	r := t.decodeR(n, p)

	isRoot := p == xlink.Null

	var sd side
	if !isRoot {
		if t.compare(t.nodes[n].key, t.nodes[p].key) < 0 {
			sd = sideLeft
		} else {
			sd = sideRight
		}
	}

	writeSlot := func(newChild xlink.Ref) {
		if isRoot {
			t.root = newChild

			return
		}

		if sd == sideLeft {
			t.nodes[p].linkL = xlink.Encode(newChild, pp)
		} else {
			t.nodes[p].linkR = xlink.Encode(newChild, pp)
		}
	}

	switch {
	case l != xlink.Null && r != xlink.Null:
		if t.subtreeSize(l, n) < t.subtreeSize(r, n) {
			fnn, fnp := t.firstWithParent(r, n)
			if fnn == nextRef {
				nextParent = p
			}

			t.nodes[fnn].linkL = xlink.Encode(l, p)

			nfnn := xlink.Encode(n, fnn)
			t.nodes[l].linkL ^= nfnn
			t.nodes[l].linkR ^= nfnn

			if r == fnn {
				t.nodes[r].linkR ^= xlink.Encode(n, p)
			} else {
				fnpp := t.decodeL(fnp, fnn)
				rn := t.decodeR(fnn, fnp)
				t.nodes[fnp].linkL = xlink.Encode(rn, fnpp)

				if rn != xlink.Null {
					fnnfnp := xlink.Encode(fnn, fnp)
					t.nodes[rn].linkL ^= fnnfnp
					t.nodes[rn].linkR ^= fnnfnp
				}

				t.nodes[fnn].linkR = xlink.Encode(r, p)

				nfnn2 := xlink.Encode(n, fnn)
				t.nodes[r].linkL ^= nfnn2
				t.nodes[r].linkR ^= nfnn2
			}

			writeSlot(fnn)
		} else {
			lnn, lnp := t.lastWithParent(l, n)
			if r == nextRef {
				nextParent = lnn
			}

			t.nodes[lnn].linkR = xlink.Encode(r, p)

			nlnn := xlink.Encode(n, lnn)
			t.nodes[r].linkL ^= nlnn
			t.nodes[r].linkR ^= nlnn

			if l == lnn {
				t.nodes[l].linkL ^= xlink.Encode(n, p)
			} else {
				lnpp := t.decodeR(lnp, lnn)
				ln := t.decodeL(lnn, lnp)
				t.nodes[lnp].linkR = xlink.Encode(ln, lnpp)

				if ln != xlink.Null {
					lnnlnp := xlink.Encode(lnn, lnp)
					t.nodes[ln].linkL ^= lnnlnp
					t.nodes[ln].linkR ^= lnnlnp
				}

				t.nodes[lnn].linkL = xlink.Encode(l, p)

				nlnn2 := xlink.Encode(n, lnn)
				t.nodes[l].linkL ^= nlnn2
				t.nodes[l].linkR ^= nlnn2
			}

			writeSlot(lnn)
		}
	default:
		lr := l
		if lr == xlink.Null {
			lr = r
		}

		if lr != xlink.Null {
			if lr == nextRef {
				nextParent = p
			}

			np := xlink.Encode(n, p)
			t.nodes[lr].linkL ^= np
			t.nodes[lr].linkR ^= np
		}

		writeSlot(lr)
	}

	t.release(n)
	t.count--

	return nextRef, nextParent
}

// DeleteCursor removes the node n (parent p) from the tree. Callers obtain
// (n, p) from an iterator or from FindWithParent. It returns the cursor of
// n's in-order successor, for repositioning a live iterator.
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) DeleteCursor(n, p xlink.Ref) (nextRef, nextParent xlink.Ref) {
	var pp xlink.Ref

	if p != xlink.Null {
		if t.compare(t.nodes[n].key, t.nodes[p].key) < 0 {
			pp = t.decodeL(p, n)
		} else {
			pp = t.decodeR(p, n)
		}
	}

	return t.deleteAt(n, p, pp)
}

// DeleteKey removes the entire node holding key, bucket and all, returning
// the number of bucket entries it held (0 if key was absent).
//
// Time complexity: O(log n) amortized.
func (t *Tree[K, V]) DeleteKey(key K) (removed int) {
	n, p, pp := t.root, xlink.Null, xlink.Null

	for n != xlink.Null {
		switch c := t.compare(key, t.nodes[n].key); {
		case c < 0:
			pp, p, n = p, n, t.decodeL(n, p)
		case c > 0:
			pp, p, n = p, n, t.decodeR(n, p)
		default:
			removed = len(t.nodes[n].bucket)
			t.deleteAt(n, p, pp)

			return removed
		}
	}

	return 0
}

// --------------------------------------------------------------------------------
// Bulk queries

// Len returns the number of distinct keys held by the tree. It does not
// count bucket depth; a multi-key facade sums bucket lengths itself for a
// total-element count.
//
// Time complexity: O(1).
func (t *Tree[K, V]) Len() int { return t.count }

// Empty reports whether the tree holds no keys.
//
// Time complexity: O(1).
func (t *Tree[K, V]) Empty() bool { return t.count == 0 }

// Clear removes every node from the tree.
//
// Time complexity: O(1).
func (t *Tree[K, V]) Clear() {
	t.nodes = t.nodes[:1]
	t.free = t.free[:0]
	t.root = xlink.Null
	t.count = 0
}

// MaxSize reports the theoretical upper bound on the number of distinct
// keys the tree can hold. It mirrors the conservative one-third reservation
// of the arena index range that the original library takes out of its size
// type, leaving headroom for the bookkeeping a scapegoat rebuild performs
// mid-insert.
//
// Time complexity: O(1).
func (t *Tree[K, V]) MaxSize() int {
	const maxRef = ^xlink.Ref(0)

	return int(maxRef / 3)
}

// Keys returns every key in ascending order.
//
// Time complexity: O(n).
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.count)

	n, p, ok := t.First()
	for ok {
		keys = append(keys, t.nodes[n].key)
		n, p, ok = t.Next(n, p)
	}

	return keys
}

// Values returns every bucket entry, key order ascending and bucket order
// preserved within a key.
//
// Time complexity: O(n).
func (t *Tree[K, V]) Values() []V {
	values := make([]V, 0, t.count)

	n, p, ok := t.First()
	for ok {
		values = append(values, t.nodes[n].bucket...)
		n, p, ok = t.Next(n, p)
	}

	return values
}

// KeysAndValues returns parallel key/value slices built the same way as
// Keys and Values, except each key is repeated once per bucket entry so the
// two slices stay aligned index-for-index.
//
// Time complexity: O(n).
func (t *Tree[K, V]) KeysAndValues() ([]K, []V) {
	keys := make([]K, 0, t.count)
	values := make([]V, 0, t.count)

	n, p, ok := t.First()
	for ok {
		for _, v := range t.nodes[n].bucket {
			keys = append(keys, t.nodes[n].key)
			values = append(values, v)
		}

		n, p, ok = t.Next(n, p)
	}

	return keys, values
}

// String renders the tree's shape as an indented box-drawing dump, one key
// per line, with each node's right subtree above it and its left subtree
// below it.
//
// Time complexity: O(n).
func (t *Tree[K, V]) String() string {
	if t.Empty() {
		return "Tree[]"
	}

	var sb strings.Builder

	sb.WriteString("Tree\n")
	t.output(t.root, xlink.Null, "", true, &sb)

	return sb.String()
}

func (t *Tree[K, V]) output(n, p xlink.Ref, prefix string, isTail bool, sb *strings.Builder) {
	if n == xlink.Null {
		return
	}

	if r := t.decodeR(n, p); r != xlink.Null {
		t.output(r, n, prefix+ternary(isTail, "│   ", "    "), false, sb)
	}

	sb.WriteString(prefix)
	sb.WriteString(ternary(isTail, "└── ", "┌── "))
	fmt.Fprintf(sb, "%v\n", t.nodes[n].key)

	if l := t.decodeL(n, p); l != xlink.Null {
		t.output(l, n, prefix+ternary(isTail, "    ", "│   "), true, sb)
	}
}

func ternary[T any](cond bool, trueVal, falseVal T) T {
	if cond {
		return trueVal
	}

	return falseVal
}
