package trie

import "fmt"

// Indexes describes an inclusive byte range [StartIndex, EndIndex] of one
// word in the source list. It never holds the characters themselves; they are
// resolved against the word list the trie was built from.
type Indexes struct {
	WordIndex  int
	StartIndex int
	EndIndex   int
}

// String renders the range as (word,start,end).
func (ix Indexes) String() string {
	return fmt.Sprintf("(%d,%d,%d)", ix.WordIndex, ix.StartIndex, ix.EndIndex)
}

// Len returns the number of bytes covered by the range.
func (ix Indexes) Len() int {
	return ix.EndIndex - ix.StartIndex + 1
}

// word returns the referenced word after checking that the range fits in it.
func (ix Indexes) word(words []string) (string, error) {
	if ix.WordIndex < 0 || ix.WordIndex >= len(words) {
		return "", fmt.Errorf("%w: word index %d out of range for %d words", ErrInvalidArgument, ix.WordIndex, len(words))
	}
	w := words[ix.WordIndex]
	if ix.StartIndex < 0 || ix.StartIndex > ix.EndIndex || ix.EndIndex >= len(w) {
		return "", fmt.Errorf("%w: range %s does not fit %q", ErrInvalidArgument, ix, w)
	}
	return w, nil
}

// Label resolves the characters the range covers.
func (ix Indexes) Label(words []string) (string, error) {
	w, err := ix.word(words)
	if err != nil {
		return "", err
	}
	return w[ix.StartIndex : ix.EndIndex+1], nil
}

// Prefix resolves the referenced word from its start through EndIndex,
// which is the path spelled from the root down to the owning edge.
func (ix Indexes) Prefix(words []string) (string, error) {
	w, err := ix.word(words)
	if err != nil {
		return "", err
	}
	return w[:ix.EndIndex+1], nil
}
