package syntax

// Parents is a read-only child → parent index of one tree.
type Parents map[*Node]*Node

// BuildParents indexes every node under root in one top-down pass.
func BuildParents(root *Node) Parents {
	p := make(Parents)
	var visit func(n *Node)
	visit = func(n *Node) {
		for _, c := range n.Children {
			p[c] = n
			visit(c)
		}
	}
	if root != nil {
		visit(root)
	}
	return p
}

// Parent returns the parent of n, or nil for the root and unknown nodes.
func (p Parents) Parent(n *Node) *Node {
	return p[n]
}
