package trie

import (
	"fmt"
	"strings"
)

// CompletionList returns the leaves below root whose words start with
// prefix, in no particular order.
//
// ok is false only when root is nil, meaning there is no trie at all. A trie
// with no matching word yields an empty, non-nil slice. words must be the
// list root was built from; a range that does not fit it is reported as
// ErrInvalidArgument.
//
// root is normally the tree root, in which case the search starts at its
// first child. Any other node is treated as the head of a sibling chain.
func CompletionList(root *Node, words []string, prefix string) (leaves []*Node, ok bool, err error) {
	if root == nil {
		return nil, false, nil
	}

	start := root
	if root.substr == nil {
		start = root.firstChild
	}

	leaves = []*Node{}
	if err := collect(start, words, prefix, &leaves); err != nil {
		return nil, true, err
	}
	return leaves, true, nil
}

// collect scans one sibling chain and recurses into every internal node
// whose path is still consistent with prefix.
func collect(ptr *Node, words []string, prefix string, leaves *[]*Node) error {
	for ; ptr != nil; ptr = ptr.sibling {
		if ptr.substr == nil {
			return fmt.Errorf("%w: node without range inside a sibling chain", ErrInvalidArgument)
		}
		word, err := ptr.substr.word(words)
		if err != nil {
			return err
		}

		if ptr.firstChild == nil {
			if strings.HasPrefix(word, prefix) {
				*leaves = append(*leaves, ptr)
			}
			continue
		}

		path := word[:ptr.substr.EndIndex+1]
		if strings.HasPrefix(word, prefix) || strings.HasPrefix(prefix, path) {
			if err := collect(ptr.firstChild, words, prefix, leaves); err != nil {
				return err
			}
		}
	}
	return nil
}
