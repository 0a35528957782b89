// Package suggest turns trie completions into word suggestions for the CLI and IPC server.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns up to limit suggestions for prefix; limit <= 0 means all
	Complete(prefix string, limit int) []Suggestion

	// CompleteBatch completes several prefixes concurrently
	CompleteBatch(prefixes []string, limit int) (map[string][]Suggestion, error)

	// Stats returns statistics about the loaded word list and trie
	Stats() map[string]int
}
