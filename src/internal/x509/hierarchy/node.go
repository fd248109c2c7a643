// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy

// Role describes where a certificate ended up in a [Forest].
type Role int

const (
	// RoleRoot is a self-signed certificate at the top level.
	RoleRoot Role = iota
	// RoleOrphan is a top-level certificate whose issuer could not be placed.
	RoleOrphan
	// RoleIntermediate is an attached certificate that issued other certificates of the set.
	RoleIntermediate
	// RoleLeaf is an attached certificate without children.
	RoleLeaf
)

// String returns a human readable role name.
func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "Root CA"
	case RoleOrphan:
		return "Orphan"
	case RoleIntermediate:
		return "Intermediate CA"
	case RoleLeaf:
		return "Leaf"
	default:
		return "Unknown"
	}
}

// Node holds one certificate and exclusively owns its children.
//
// Nodes are created by [Build] and never change afterwards.
type Node[C Certificate] struct {
	cert     C
	children []*Node[C]
}

// Certificate returns the certificate held by the node.
func (n *Node[C]) Certificate() C { return n.cert }

// Children returns the child nodes in [Compare] order.
// The returned slice must not be modified.
func (n *Node[C]) Children() []*Node[C] { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node[C]) IsLeaf() bool { return len(n.children) == 0 }

// FirstLeaf returns the leftmost leaf below n, or n itself when it is a leaf.
func (n *Node[C]) FirstLeaf() *Node[C] {
	for !n.IsLeaf() {
		n = n.children[0]
	}
	return n
}

// Len returns the number of nodes in the subtree rooted at n, n included.
func (n *Node[C]) Len() int {
	total := 1
	for _, child := range n.children {
		total += child.Len()
	}
	return total
}

func (n *Node[C]) walk(depth int, fn func(*Node[C], int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.children {
		if !child.walk(depth+1, fn) {
			return false
		}
	}
	return true
}

// Forest is the synthetic, payload-less root returned by [Build].
// It owns the top-level nodes: self-signed roots and orphans.
type Forest[C Certificate] struct {
	roots []*Node[C]
}

// Roots returns the top-level nodes in [Compare] order.
// The returned slice must not be modified.
func (f *Forest[C]) Roots() []*Node[C] { return f.roots }

// Empty reports whether the forest holds no certificate.
func (f *Forest[C]) Empty() bool { return len(f.roots) == 0 }

// Len returns the number of nodes in the forest.
func (f *Forest[C]) Len() int {
	total := 0
	for _, root := range f.roots {
		total += root.Len()
	}
	return total
}

// Walk visits every node depth-first in pre-order, top-level nodes at depth 0.
// Walking stops as soon as fn returns false.
func (f *Forest[C]) Walk(fn func(n *Node[C], depth int) bool) {
	for _, root := range f.roots {
		if !root.walk(0, fn) {
			return
		}
	}
}

// Certificates returns every certificate of the forest in pre-order,
// so each issuer precedes the certificates it issued.
func (f *Forest[C]) Certificates() []C {
	certs := make([]C, 0, f.Len())
	f.Walk(func(n *Node[C], _ int) bool {
		certs = append(certs, n.cert)
		return true
	})
	return certs
}

// FirstLeaf returns the leftmost leaf of the first top-level subtree.
// It is the natural initial selection when displaying the forest.
func (f *Forest[C]) FirstLeaf() (*Node[C], bool) {
	if f.Empty() {
		return nil, false
	}
	return f.roots[0].FirstLeaf(), true
}

// PathTo returns the nodes from a top-level node down to the node holding a
// certificate equal to c, or nil when c is not in the forest.
func (f *Forest[C]) PathTo(c Certificate) []*Node[C] {
	for _, root := range f.roots {
		if path := pathTo(root, c, nil); path != nil {
			return path
		}
	}
	return nil
}

func pathTo[C Certificate](n *Node[C], c Certificate, prefix []*Node[C]) []*Node[C] {
	prefix = append(prefix, n)
	if Equal(n.cert, c) {
		return append([]*Node[C](nil), prefix...)
	}
	for _, child := range n.children {
		if path := pathTo(child, c, prefix); path != nil {
			return path
		}
	}
	return nil
}

// RoleOf returns the role of a node placed at the given depth.
func RoleOf[C Certificate](n *Node[C], depth int) Role {
	switch {
	case depth == 0 && IsSelfSigned(n.cert):
		return RoleRoot
	case depth == 0:
		return RoleOrphan
	case n.IsLeaf():
		return RoleLeaf
	default:
		return RoleIntermediate
	}
}
