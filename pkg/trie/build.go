package trie

// BuildTrie inserts words into a new trie one at a time, first to last.
// Insertion order is significant: it decides the tree's shape, not which
// words it holds. The returned root has no range; an empty list yields a
// root without children.
//
// words must stay alive and unchanged while the trie is used, since nodes
// only hold index ranges into it. A list containing an empty or non-lowercase
// word, a duplicate, or a word that is a prefix of another is rejected with
// ErrInvalidArgument.
func BuildTrie(words []string) (*Node, error) {
	if err := Validate(words); err != nil {
		return nil, err
	}

	root := &Node{}
	if len(words) == 0 {
		return root, nil
	}

	root.firstChild = &Node{substr: &Indexes{WordIndex: 0, StartIndex: 0, EndIndex: len(words[0]) - 1}}
	for i := 1; i < len(words); i++ {
		insert(root, words, i)
	}
	return root, nil
}

// insert adds words[i] below root, walking sibling chains level by level
// until the word either diverges from every edge at some level or splits an
// edge it only partly agrees with.
func insert(root *Node, words []string, i int) {
	word := words[i]
	ptr, prev := root.firstChild, root.firstChild

	for ptr != nil {
		edge := ptr.substr
		k := matchUntil(words[edge.WordIndex], word, edge.StartIndex, edge.EndIndex)

		switch {
		case k < 0:
			prev, ptr = ptr, ptr.sibling
		case k == edge.EndIndex:
			prev, ptr = ptr, ptr.firstChild
		default:
			ptr.split(k, i, len(word)-1)
			return
		}
	}

	// No edge on this level shares a first byte with the rest of the word.
	prev.sibling = &Node{substr: &Indexes{
		WordIndex:  i,
		StartIndex: prev.substr.StartIndex,
		EndIndex:   len(word) - 1,
	}}
}

// matchUntil compares edgeWord[start:end+1] with word from offset start and
// returns the last offset at which both agree, or -1 when the first byte
// already differs or word ends before start.
func matchUntil(edgeWord, word string, start, end int) int {
	if start >= len(word) {
		return -1
	}
	n := start
	for n <= end && n < len(word) && edgeWord[n] == word[n] {
		n++
	}
	if n == start {
		return -1
	}
	return n - 1
}

// split truncates n's edge to end at k. The rest of the old edge becomes n's
// first child and inherits n's former children; the remainder of word
// wordIndex (up to wordEnd) becomes that child's sibling. n keeps its place
// in its own sibling chain.
func (n *Node) split(k, wordIndex, wordEnd int) {
	old := n.substr
	tail := &Node{
		substr:     &Indexes{WordIndex: old.WordIndex, StartIndex: k + 1, EndIndex: old.EndIndex},
		firstChild: n.firstChild,
	}
	tail.sibling = &Node{substr: &Indexes{WordIndex: wordIndex, StartIndex: k + 1, EndIndex: wordEnd}}

	old.EndIndex = k
	n.firstChild = tail
}
