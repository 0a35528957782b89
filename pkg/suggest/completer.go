package suggest

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/panjf2000/ants"
)

// Suggestion is one completed word and its position in the word list.
type Suggestion struct {
	Word  string
	Index int
}

// Completer answers prefix queries against a trie built once at startup.
// Queries only read the trie, so batches fan out over a goroutine pool.
type Completer struct {
	trie    *trie.Trie
	pool    *ants.Pool
	workers int
}

// NewCompleter builds the trie over words and starts a pool of workers for
// batch queries. workers <= 0 uses GOMAXPROCS.
func NewCompleter(words []string, workers int) (*Completer, error) {
	t, err := trie.New(words)
	if err != nil {
		return nil, fmt.Errorf("failed to build trie: %w", err)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(r interface{}) {
		buf := make([]byte, 2048)
		l := runtime.Stack(buf, false)
		log.Errorf("Panic in batch query: %v: %s", r, buf[:l])
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &Completer{
		trie:    t,
		pool:    pool,
		workers: workers,
	}, nil
}

// Complete returns words starting with prefix, in word-list order.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	leaves := c.trie.Complete(prefix)
	words := c.trie.Words()

	suggestions := make([]Suggestion, 0, len(leaves))
	for _, leaf := range leaves {
		ix, _ := leaf.Substr()
		suggestions = append(suggestions, Suggestion{
			Word:  leaf.Word(words),
			Index: ix.WordIndex,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Index < suggestions[j].Index
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// CompleteBatch runs Complete for every prefix on the worker pool and keys
// the results by prefix.
func (c *Completer) CompleteBatch(prefixes []string, limit int) (map[string][]Suggestion, error) {
	results := make([][]Suggestion, len(prefixes))
	var wg sync.WaitGroup

	for i, prefix := range prefixes {
		wg.Add(1)
		err := c.pool.Submit(func() {
			defer wg.Done()
			results[i] = c.Complete(prefix, limit)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("failed to submit query %q: %w", prefix, err)
		}
	}
	wg.Wait()

	out := make(map[string][]Suggestion, len(prefixes))
	for i, prefix := range prefixes {
		out[prefix] = results[i]
	}
	return out, nil
}

func (c *Completer) Stats() map[string]int {
	s := c.trie.Stats()
	return map[string]int{
		"totalWords": s.Words,
		"nodes":      s.Nodes,
		"leaves":     s.Leaves,
		"maxDepth":   s.MaxDepth,
		"workers":    c.workers,
	}
}

// Stop releases the worker pool.
func (c *Completer) Stop() {
	c.pool.Release()
}
