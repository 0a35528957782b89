// Package cli handles cmd line input and completions for DBG and testing the trie
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// InputHandler reads prefixes line by line and prints their completions.
// Prefix bounds, the suggestion limit and input filtering come from flags.
type InputHandler struct {
	completer       suggest.ICompleter
	logger          *log.Logger
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		logger:          logger.New("cli"),
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start prompts for prefixes from r until it is exhausted.
// Blank lines are ignored; io.EOF ends the loop without error.
func (h *InputHandler) Start(r io.Reader) error {
	h.logger.Print("wordtrie CLI")
	h.logger.Print("type a prefix and press Enter to see completions (Ctrl+D to exit):")

	scanner := bufio.NewScanner(r)
	for {
		h.logger.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		prefix := strings.TrimSpace(scanner.Text())
		if prefix == "" {
			continue
		}
		h.handleInput(prefix)
	}
}

// handleInput validates one prefix, completes it and prints the results.
// It returns the suggestions shown, nil when the prefix was rejected.
func (h *InputHandler) handleInput(prefix string) []suggest.Suggestion {
	h.requestCount++

	if len(prefix) < h.minPrefixLength {
		h.logger.Errorf("Prefix too short: %s", prefix)
		return nil
	}
	if h.maxPrefixLength > 0 && len(prefix) > h.maxPrefixLength {
		h.logger.Errorf("Prefix too long: %s", prefix)
		return nil
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(prefix) {
			h.logger.Infof("No results found for prefix: '%s'", prefix)
			return nil
		}
	} else {
		h.logger.Debug("Input filtering disabled")
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	h.logger.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.logger.Warnf("No completions found for prefix: '%s'", prefix)
		return suggestions
	}

	h.logger.Printf("Found %d completions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		h.logger.Printf("%2d. %-40s (index: %8s)", i+1, clWord, utils.FormatWithCommas(s.Index))
	}
	return suggestions
}
