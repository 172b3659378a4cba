package syntax

// NearestAncestor walks parent links outward from n (n excluded) and returns
// the first node of the given kind.
func NearestAncestor(p Parents, n *Node, kind Kind) *Node {
	for cur := p.Parent(n); cur != nil; cur = p.Parent(cur) {
		if cur.Kind == kind {
			return cur
		}
	}
	return nil
}

// FindDescendant searches n's subtree in pre-order, n excluded, and returns
// the first node of the given kind. Token leaves are not descended into.
func FindDescendant(n *Node, kind Kind) *Node {
	return FindDescendantFunc(n, func(c *Node) bool { return c.Kind == kind })
}

// FindDescendantFunc is FindDescendant with an arbitrary predicate.
func FindDescendantFunc(n *Node, pred func(*Node) bool) *Node {
	if n == nil || n.Kind == Token {
		return nil
	}
	for _, c := range n.Children {
		if pred(c) {
			return c
		}
		if found := FindDescendantFunc(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// ChainContainsOptional reports whether the postfix spine of n (the chain of
// member, subscript, call, force-unwrap and optional-chain bases) has an
// optional-chain marker.
func ChainContainsOptional(n *Node) bool {
	for n != nil {
		switch n.Kind {
		case OptionalChain:
			return true
		case Member, Subscript, ForceUnwrap:
			n = n.Base()
		case Call:
			n = n.Callee()
		default:
			return false
		}
	}
	return false
}
