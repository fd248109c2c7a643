// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509hierarchy

import "slices"

// Build assembles the issuer→subject forest of certs.
//
// The input may be empty, unordered and contain duplicates. Certificates that
// [Compare] as equal collapse into one node; the first occurrence is kept.
// Placement follows these passes:
//
//  1. Certificates whose issuer is not the subject of any certificate of the
//     input become top-level orphans.
//  2. Self-signed certificates become top-level roots.
//  3. The remaining certificates are attached, pass after pass, below the first
//     node found depth-first whose subject equals their issuer. A certificate
//     attached earlier in a pass can already serve as issuer later in the same pass.
//  4. When a pass attaches nothing (issuer cycles), every certificate left is
//     promoted to a top-level orphan, which guarantees termination.
//
// Finally siblings and top-level nodes are sorted with [Compare], so the result
// does not depend on input order. Every distinct certificate appears exactly once.
//
// Build is a pure function: it never fails, performs no I/O and keeps no state
// between calls. The input slice is not modified.
//
// Parameters:
//   - certs: Certificates to arrange
//
// Returns:
//   - *Forest[C]: The assembled forest, empty for empty input
//
// Thread Safety: Safe for concurrent use on inputs that are not being mutated.
func Build[C Certificate](certs []C) *Forest[C] {
	pool := normalize(certs)

	b := &builder[C]{
		forest: &Forest[C]{},
		placed: make(map[string][]*Node[C], len(pool)),
	}

	subjects := make(map[string]struct{}, len(pool))
	for _, cert := range pool {
		subjects[cert.SubjectName()] = struct{}{}
	}

	pool = place(pool, func(cert C) bool {
		if _, ok := subjects[cert.IssuerName()]; ok {
			return false
		}
		b.addRoot(cert)
		return true
	})

	pool = place(pool, func(cert C) bool {
		if !IsSelfSigned(cert) {
			return false
		}
		b.addRoot(cert)
		return true
	})

	for len(pool) > 0 {
		before := len(pool)
		pool = place(pool, func(cert C) bool {
			issuer := b.findIssuer(cert.IssuerName())
			if issuer == nil {
				return false
			}
			b.addChild(issuer, cert)
			return true
		})

		if len(pool) == before {
			for _, cert := range pool {
				b.addRoot(cert)
			}
			break
		}
	}

	sortNodes(b.forest.roots)
	return b.forest
}

// normalize returns a sorted copy of certs without duplicates.
func normalize[C Certificate](certs []C) []C {
	pool := slices.Clone(certs)
	slices.SortStableFunc(pool, func(a, b C) int { return Compare(a, b) })
	return slices.CompactFunc(pool, func(a, b C) bool { return Equal(a, b) })
}

// place calls fn on every certificate in order and returns those it did not place.
func place[C Certificate](pool []C, fn func(C) bool) []C {
	remaining := pool[:0]
	for _, cert := range pool {
		if !fn(cert) {
			remaining = append(remaining, cert)
		}
	}
	return remaining
}

type builder[C Certificate] struct {
	forest *Forest[C]

	// placed indexes every node of the forest by subject name.
	placed map[string][]*Node[C]
}

func (b *builder[C]) addRoot(cert C) {
	n := &Node[C]{cert: cert}
	b.forest.roots = append(b.forest.roots, n)
	b.index(n)
}

func (b *builder[C]) addChild(parent *Node[C], cert C) {
	n := &Node[C]{cert: cert}
	parent.children = append(parent.children, n)
	b.index(n)
}

func (b *builder[C]) index(n *Node[C]) {
	subject := n.cert.SubjectName()
	b.placed[subject] = append(b.placed[subject], n)
}

// findIssuer returns the first node, in depth-first pre-order over the
// current forest, whose subject is issuer.
func (b *builder[C]) findIssuer(issuer string) *Node[C] {
	candidates := b.placed[issuer]
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	var found *Node[C]
	b.forest.Walk(func(n *Node[C], _ int) bool {
		if n.cert.SubjectName() == issuer {
			found = n
			return false
		}
		return true
	})
	return found
}

func sortNodes[C Certificate](nodes []*Node[C]) {
	slices.SortStableFunc(nodes, func(a, b *Node[C]) int { return Compare(a.cert, b.cert) })
	for _, n := range nodes {
		sortNodes(n.children)
	}
}
