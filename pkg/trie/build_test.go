package trie

import (
	"errors"
	"testing"
)

var sampleWords = []string{
	"stock", "bear", "bull", "bell", "apple", "apply", "apt", "bat",
	"bun", "cab", "cat", "cow", "stoop", "stop", "sting", "zebra",
}

func TestBuildTrieEmpty(t *testing.T) {
	root, err := BuildTrie(nil)
	if err != nil {
		t.Fatalf("BuildTrie(nil) error: %v", err)
	}
	if !root.IsRoot() {
		t.Errorf("root has a range")
	}
	if root.FirstChild() != nil {
		t.Errorf("empty trie root has a first child")
	}
}

func TestBuildTrieSingleWord(t *testing.T) {
	for _, w := range []string{"a", "bear", "internationalization"} {
		t.Run(w, func(t *testing.T) {
			words := []string{w}
			root, err := BuildTrie(words)
			if err != nil {
				t.Fatalf("BuildTrie error: %v", err)
			}
			children := root.Children()
			if len(children) != 1 {
				t.Fatalf("got %d first-level nodes, want 1", len(children))
			}
			leaf := children[0]
			if !leaf.IsLeaf() {
				t.Errorf("single edge is not a leaf")
			}
			if got, _ := leaf.Substr(); got != (Indexes{0, 0, len(w) - 1}) {
				t.Errorf("range = %v, want (0,0,%d)", got, len(w)-1)
			}
			if got := leaf.Word(words); got != w {
				t.Errorf("Word = %q, want %q", got, w)
			}
		})
	}
}

func TestBuildTrieSplitsSharedPrefix(t *testing.T) {
	words := []string{"bat", "bun"}
	root, err := BuildTrie(words)
	if err != nil {
		t.Fatalf("BuildTrie error: %v", err)
	}

	top := root.Children()
	if len(top) != 1 {
		t.Fatalf("got %d first-level nodes, want 1", len(top))
	}
	if got, _ := top[0].Substr(); got != (Indexes{0, 0, 0}) {
		t.Errorf("shared edge = %v, want (0,0,0)", got)
	}
	if got := top[0].Label(words); got != "b" {
		t.Errorf("shared label = %q, want %q", got, "b")
	}

	want := []Indexes{{0, 1, 2}, {1, 1, 2}}
	children := top[0].Children()
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, c := range children {
		if got, _ := c.Substr(); got != want[i] {
			t.Errorf("child %d = %v, want %v", i, got, want[i])
		}
		if !c.IsLeaf() {
			t.Errorf("child %d is not a leaf", i)
		}
	}
}

// shape renders a subtree as nested labels for structural comparison.
func shape(n *Node, words []string) string {
	s := ""
	for c := n.FirstChild(); c != nil; c = c.Sibling() {
		s += c.Label(words)
		if !c.IsLeaf() {
			s += "[" + shape(c, words) + "]"
		}
		if c.Sibling() != nil {
			s += " "
		}
	}
	return s
}

func TestBuildTrieShape(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"bear bull bell", []string{"bear", "bull", "bell"}, "b[e[ar ll] ull]"},
		{"order matters", []string{"bell", "bull", "bear"}, "b[e[ll ar] ull]"},
		{"no shared prefix", []string{"cat", "dog", "emu"}, "cat dog emu"},
		{"descend then append", []string{"stock", "stop", "stoop", "sting"}, "st[o[ck p op] ing]"},
		{"split then append", []string{"stock", "stop", "stay"}, "st[o[ck p] ay]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := BuildTrie(tt.words)
			if err != nil {
				t.Fatalf("BuildTrie error: %v", err)
			}
			if got := shape(root, tt.words); got != tt.want {
				t.Errorf("shape = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildTrieLeavesSpellTheirWords(t *testing.T) {
	root, err := BuildTrie(sampleWords)
	if err != nil {
		t.Fatalf("BuildTrie error: %v", err)
	}

	seen := make(map[int]bool)
	var check func(n *Node, path string)
	check = func(n *Node, path string) {
		for c := n.FirstChild(); c != nil; c = c.Sibling() {
			ix, ok := c.Substr()
			if !ok {
				t.Fatalf("non-root node without range under %q", path)
			}
			p := path + c.Label(sampleWords)
			if p != c.Prefix(sampleWords) {
				t.Errorf("path %q differs from resolved prefix %q of %v", p, c.Prefix(sampleWords), ix)
			}
			if c.IsLeaf() {
				if p != sampleWords[ix.WordIndex] {
					t.Errorf("leaf path %q, want %q", p, sampleWords[ix.WordIndex])
				}
				if seen[ix.WordIndex] {
					t.Errorf("word %d has two leaves", ix.WordIndex)
				}
				seen[ix.WordIndex] = true
				continue
			}
			check(c, p)
		}
	}
	check(root, "")

	if len(seen) != len(sampleWords) {
		t.Errorf("found %d leaves, want %d", len(seen), len(sampleWords))
	}
}

func TestBuildTrieSiblingsDiffer(t *testing.T) {
	root, err := BuildTrie(sampleWords)
	if err != nil {
		t.Fatalf("BuildTrie error: %v", err)
	}

	nodes := 0
	var check func(n *Node)
	check = func(n *Node) {
		firsts := make(map[byte]bool)
		for c := n.FirstChild(); c != nil; c = c.Sibling() {
			nodes++
			b := c.Label(sampleWords)[0]
			if firsts[b] {
				t.Errorf("two siblings under %q start with %q", n.Prefix(sampleWords), b)
			}
			firsts[b] = true
			if !c.IsLeaf() && len(c.Children()) < 2 {
				t.Errorf("internal node %q has fewer than two children", c.Prefix(sampleWords))
			}
			check(c)
		}
	}
	check(root)

	if limit := 2*len(sampleWords) - 1; nodes > limit {
		t.Errorf("tree has %d nodes, want at most %d", nodes, limit)
	}
}

func TestBuildTrieRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		words []string
	}{
		{"empty word", []string{"bear", ""}},
		{"uppercase", []string{"Bear"}},
		{"duplicate", []string{"bear", "bull", "bear"}},
		{"prefix of earlier", []string{"bear", "be"}},
		{"extends earlier", []string{"bear", "bears"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := BuildTrie(tt.words)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("error = %v, want ErrInvalidArgument", err)
			}
			if root != nil {
				t.Errorf("got a root alongside the error")
			}
		})
	}
}

func TestMatchUntil(t *testing.T) {
	tests := []struct {
		edge, word string
		start, end int
		want       int
	}{
		{"bear", "bull", 0, 3, 0},
		{"bear", "bell", 1, 3, 1},
		{"bear", "bear", 0, 3, 3},
		{"bear", "cat", 0, 3, -1},
		{"stock", "sting", 2, 4, -1},
		{"stock", "st", 2, 4, -1},
		{"stock", "stop", 2, 4, 2},
	}
	for _, tt := range tests {
		if got := matchUntil(tt.edge, tt.word, tt.start, tt.end); got != tt.want {
			t.Errorf("matchUntil(%q, %q, %d, %d) = %d, want %d", tt.edge, tt.word, tt.start, tt.end, got, tt.want)
		}
	}
}

func BenchmarkBuildTrie(b *testing.B) {
	words := generateWords(5000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildTrie(words); err != nil {
			b.Fatal(err)
		}
	}
}

// generateWords returns n distinct, equal-length words starting with 'x', so
// none is a prefix of another or of sampleWords.
func generateWords(n int) []string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	words := make([]string, n)
	for i := range words {
		buf := make([]byte, 7)
		buf[0] = 'x'
		v := i * 7919
		for j := 1; j < len(buf); j++ {
			buf[j] = letters[v%len(letters)]
			v /= len(letters)
		}
		words[i] = string(buf)
	}
	return words
}
