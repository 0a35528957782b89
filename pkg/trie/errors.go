package trie

import "errors"

// ErrInvalidArgument marks a violated precondition: a malformed word list
// handed to the builder, or a word list that does not match the one a trie
// was built from.
var ErrInvalidArgument = errors.New("invalid argument")
