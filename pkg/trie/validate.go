package trie

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

var errFound = errors.New("found")

// Validator checks words against the builder's preconditions as they are
// added. It indexes accepted words in a patricia trie so that duplicates and
// prefix relations are found without comparing every pair.
type Validator struct {
	index *patricia.Trie
	count int
}

func NewValidator() *Validator {
	return &Validator{index: patricia.NewTrie()}
}

// Len returns the number of accepted words.
func (v *Validator) Len() int {
	return v.count
}

// Check reports whether word could be inserted after the words accepted so
// far. It does not record the word.
func (v *Validator) Check(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}
	if strings.ToLower(word) != word {
		return fmt.Errorf("%w: %q is not lowercase", ErrInvalidArgument, word)
	}

	key := patricia.Prefix(word)
	if item := v.index.Get(key); item != nil {
		return fmt.Errorf("%w: %q duplicates word %d", ErrInvalidArgument, word, item.(int))
	}

	var conflict string
	var conflictIdx int
	visit := func(p patricia.Prefix, item patricia.Item) error {
		conflict, conflictIdx = string(p), item.(int)
		return errFound
	}

	if err := v.index.VisitSubtree(key, visit); errors.Is(err, errFound) {
		return fmt.Errorf("%w: %q is a prefix of word %d (%q)", ErrInvalidArgument, word, conflictIdx, conflict)
	}
	if err := v.index.VisitPrefixes(key, visit); errors.Is(err, errFound) {
		return fmt.Errorf("%w: word %d (%q) is a prefix of %q", ErrInvalidArgument, conflictIdx, conflict, word)
	}
	return nil
}

// Add checks word and, when it passes, records it under the next index.
func (v *Validator) Add(word string) error {
	if err := v.Check(word); err != nil {
		return err
	}
	v.index.Insert(patricia.Prefix(word), v.count)
	v.count++
	return nil
}

// Validate checks a whole list in insertion order.
func Validate(words []string) error {
	v := NewValidator()
	for i, w := range words {
		if err := v.Add(w); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	return nil
}
