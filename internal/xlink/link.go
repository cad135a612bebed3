// Package xlink implements the XOR-linked neighbour codec shared by every
// tree in this module.
//
// A classic XOR-linked tree stores, at each node, the bitwise XOR of its two
// neighbours (its parent and one of its children) in a single word, instead
// of two separate pointers. The "other" neighbour is recovered during a
// traversal by XOR-ing the stored word with whichever neighbour the walk
// arrived from: decode(link, known) == other, because link == known^other
// and a^a == 0.
//
// Go cannot take the address of an arbitrary slice element and expect it to
// stay valid once the backing array grows, so this package does not encode
// raw pointers. It encodes Ref, a stable arena index (see package xortree),
// which behaves identically under XOR arithmetic and never moves.
package xlink

// Ref indexes a node within a tree's arena. The zero value, Null, never
// refers to a live node: arenas reserve slot 0 as the null sentinel, so a
// freshly zeroed Ref is always safe to compare against Null.
type Ref uint32

// Null is the sentinel Ref denoting "no node" — an absent parent, an absent
// child, or an absent neighbour at the end of a chain.
const Null Ref = 0

// Encode folds two neighbours into the single word stored at a node.
// Either argument may be Null; Encode(a, Null) == a and Encode(Null, Null)
// == Null, which is exactly the link stored by a childless root.
func Encode(a, b Ref) Ref {
	return a ^ b
}

// Decode recovers the neighbour on the opposite side of a link from the
// neighbour the caller arrived from. Given a node n reached from known,
// Decode(n's stored link, known) yields n's other neighbour, whether that
// is a child seen while descending or the parent seen while ascending.
func Decode(link, known Ref) Ref {
	return link ^ known
}
