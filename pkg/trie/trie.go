/*
Package trie implements a compressed prefix tree over a fixed, ordered word
list, and prefix completion against it.

Edges do not copy text. Every node holds an Indexes range into one word of
the source list, so the list must outlive the tree and must not change.
Common prefixes are shared by splitting edges as words are inserted:

	words := []string{"bear", "bull", "bell"}
	root, err := trie.BuildTrie(words)
	leaves, ok, err := trie.CompletionList(root, words, "be")
	// leaves hold "bear" and "bell"; ok is false only for a nil root

A node's children hang off its first child and continue along the sibling
chain. Siblings under one parent start with distinct bytes, and each leaf
spells exactly one word of the list from the root down.

The tree is built once and then only read. Completion keeps no shared
state, so a built tree can serve concurrent queries.

Trie bundles a root with the word list it was built from.
*/
package trie

import (
	"slices"

	"github.com/charmbracelet/log"
)

// Trie is a built tree together with its word list.
type Trie struct {
	root  *Node
	words []string
}

// Stats summarizes the shape of a built tree.
type Stats struct {
	Words    int
	Nodes    int
	Leaves   int
	MaxDepth int
}

// New builds a Trie from words. The slice is cloned, the strings are not.
func New(words []string) (*Trie, error) {
	words = slices.Clone(words)
	root, err := BuildTrie(words)
	if err != nil {
		return nil, err
	}
	t := &Trie{root: root, words: words}
	log.Debugf("Built trie over %d words", len(words))
	return t, nil
}

// Words returns the list the trie was built from. Callers must not modify it.
func (t *Trie) Words() []string {
	return t.words
}

func (t *Trie) Len() int {
	return len(t.words)
}

// Complete returns the leaves whose words start with prefix.
func (t *Trie) Complete(prefix string) []*Node {
	leaves, _, err := CompletionList(t.root, t.words, prefix)
	if err != nil {
		// Unreachable for a tree built by New: it owns its word list.
		log.Errorf("Completing %q: %v", prefix, err)
		return []*Node{}
	}
	return leaves
}

// WordsOf resolves leaf handles to their words.
func (t *Trie) WordsOf(leaves []*Node) []string {
	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		out = append(out, leaf.Word(t.words))
	}
	return out
}

// Walk visits every node below the root in depth-first order, passing its
// depth (1 for first-level edges). A non-nil error from fn stops the walk and
// is returned.
func (t *Trie) Walk(fn func(n *Node, depth int) error) error {
	return walk(t.root.firstChild, 1, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) error) error {
	for ; n != nil; n = n.sibling {
		if err := fn(n, depth); err != nil {
			return err
		}
		if err := walk(n.firstChild, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

func (t *Trie) Stats() Stats {
	s := Stats{Words: len(t.words)}
	_ = t.Walk(func(n *Node, depth int) error {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		}
		s.MaxDepth = max(s.MaxDepth, depth)
		return nil
	})
	return s
}
