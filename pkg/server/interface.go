/*
Package server implements msgpack IPC for word completion services.

Clients write a stream of msgpack maps to stdin and read one msgpack map per
request from stdout. Every request carries an ID that is echoed back. Which
operation runs depends on the fields present.

# Completion

	{"id": "req_001", "p": "be", "l": 24}

is answered with the matching words in word-list order, their list index,
their position in the answer and the time taken in microseconds:

	{"id": "req_001", "s": [{"w": "bear", "i": 1, "r": 1}, {"w": "bell", "i": 3, "r": 2}], "c": 2, "t": 12}

# Batch

	{"id": "req_002", "ps": ["be", "st"], "l": 10}

runs every prefix concurrently on the completer's worker pool and answers
with one suggestion list per prefix:

	{"id": "req_002", "r": {"be": [...], "st": [...]}, "c": 2, "t": 40}

# Actions

	{"id": "info_001", "action": "get_info"}
	{"id": "ping", "action": "health"}

get_info reports the size and shape of the loaded trie.

Failures are reported as {"id": ..., "e": "message", "c": 400} with 400 for
bad requests and 500 for internal errors.
*/
package server

// Request is the envelope every client message decodes into
type Request struct {
	ID       string   `msgpack:"id"`
	Prefix   string   `msgpack:"p,omitempty"`
	Prefixes []string `msgpack:"ps,omitempty"`
	Limit    int      `msgpack:"l,omitempty"`
	Action   string   `msgpack:"action,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word  string `msgpack:"w"`
	Index int    `msgpack:"i"`
	Rank  uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// BatchResponse - batch completion response keyed by prefix
type BatchResponse struct {
	ID        string                            `msgpack:"id"`
	Results   map[string][]CompletionSuggestion `msgpack:"r"`
	Count     int                               `msgpack:"c"`
	TimeTaken int64                             `msgpack:"t"`
}

// InfoResponse - trie statistics
type InfoResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Words    int    `msgpack:"words,omitempty"`
	Nodes    int    `msgpack:"nodes,omitempty"`
	Leaves   int    `msgpack:"leaves,omitempty"`
	MaxDepth int    `msgpack:"max_depth,omitempty"`
	Workers  int    `msgpack:"workers,omitempty"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
