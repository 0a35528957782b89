package trie

// Node is a vertex of the compressed trie. Children are reached through
// firstChild and then the sibling chain; both links are owned by the node.
type Node struct {
	substr     *Indexes
	firstChild *Node
	sibling    *Node
}

// Substr returns the range labelling the edge into this node. ok is false
// for the synthetic root.
func (n *Node) Substr() (ix Indexes, ok bool) {
	if n == nil || n.substr == nil {
		return Indexes{}, false
	}
	return *n.substr, true
}

// FirstChild returns the head of this node's child chain, or nil for a leaf.
func (n *Node) FirstChild() *Node {
	if n == nil {
		return nil
	}
	return n.firstChild
}

// Sibling returns the next edge under the same parent.
func (n *Node) Sibling() *Node {
	if n == nil {
		return nil
	}
	return n.sibling
}

func (n *Node) IsRoot() bool {
	return n != nil && n.substr == nil
}

// IsLeaf reports whether the node has no children. A leaf holds exactly one
// complete word.
func (n *Node) IsLeaf() bool {
	return n != nil && n.firstChild == nil
}

// Children collects the sibling chain under n in order.
func (n *Node) Children() []*Node {
	var children []*Node
	for c := n.FirstChild(); c != nil; c = c.sibling {
		children = append(children, c)
	}
	return children
}

// Word returns the word the node's range points into. For a leaf this is
// the stored word. It returns "" for the root or a range that does not fit
// words.
func (n *Node) Word(words []string) string {
	if n == nil || n.substr == nil {
		return ""
	}
	w, err := n.substr.word(words)
	if err != nil {
		return ""
	}
	return w
}

// Prefix returns the string spelled from the root down to and including
// this node's edge.
func (n *Node) Prefix(words []string) string {
	if n == nil || n.substr == nil {
		return ""
	}
	p, err := n.substr.Prefix(words)
	if err != nil {
		return ""
	}
	return p
}

// Label returns the characters on the edge into this node.
func (n *Node) Label(words []string) string {
	if n == nil || n.substr == nil {
		return ""
	}
	l, err := n.substr.Label(words)
	if err != nil {
		return ""
	}
	return l
}
