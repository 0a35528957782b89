package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// maxBatch bounds the prefixes accepted in one batch request.
const maxBatch = 256

// Server handles msgpack IPC for word completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	metrics      *Metrics
	logger       *log.Logger
	requestCount int
}

// NewServer creates a completion server reading requests from r and writing
// responses to w, normally stdin and stdout.
func NewServer(completer suggest.ICompleter, cfg *config.Config, metrics *Metrics, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
		metrics:   metrics,
		logger:    logger.New("server"),
	}
}

// Start signals readiness and then serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	s.send(map[string]string{"status": "ready"})

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			// The stream itself is broken; nothing after this can be framed.
			s.logger.Errorf("Reading request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return fmt.Errorf("failed to read request: %w", err)
		}
		s.requestCount++

		var request Request
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.logger.Warnf("Decoding request: %v", err)
			s.metrics.failed("decode")
			s.sendError(rawID(raw), "Invalid request: "+err.Error(), 400)
			continue
		}
		s.handleRequest(request)
	}
}

// rawID recovers the id of a request that did not decode into Request, so
// the client can still match the error to what it sent.
func rawID(raw msgpack.RawMessage) string {
	var envelope map[string]any
	if err := msgpack.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if id, ok := envelope["id"]; ok && id != nil {
		return fmt.Sprint(id)
	}
	return ""
}

// handleRequest dispatches on the fields present in the request
func (s *Server) handleRequest(request Request) {
	switch {
	case request.Action != "":
		s.handleAction(request)
	case len(request.Prefixes) > 0:
		s.handleBatch(request)
	default:
		s.handleComplete(request)
	}
}

func (s *Server) handleComplete(request Request) {
	if msg := s.checkPrefix(request.Prefix); msg != "" {
		s.metrics.failed("complete")
		s.sendError(request.ID, msg, 400)
		s.logger.Debug("Rejected prefix", "prefix", request.Prefix, "reason", msg)
		return
	}

	start := time.Now()
	suggestions := s.completer.Complete(request.Prefix, s.limit(request.Limit))
	elapsed := time.Since(start)
	s.metrics.observe("complete", elapsed)

	s.send(CompletionResponse{
		ID:          request.ID,
		Suggestions: toWire(suggestions),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleBatch(request Request) {
	if len(request.Prefixes) > maxBatch {
		s.metrics.failed("batch")
		s.sendError(request.ID, fmt.Sprintf("Batch exceeds maximum of %d prefixes", maxBatch), 400)
		return
	}
	for _, p := range request.Prefixes {
		if msg := s.checkPrefix(p); msg != "" {
			s.metrics.failed("batch")
			s.sendError(request.ID, fmt.Sprintf("%s: %q", msg, p), 400)
			return
		}
	}

	start := time.Now()
	results, err := s.completer.CompleteBatch(request.Prefixes, s.limit(request.Limit))
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Errorf("Batch request %s: %v", request.ID, err)
		s.metrics.failed("batch")
		s.sendError(request.ID, "Internal server error", 500)
		return
	}
	s.metrics.observe("batch", elapsed)

	wire := make(map[string][]CompletionSuggestion, len(results))
	for prefix, suggestions := range results {
		wire[prefix] = toWire(suggestions)
	}
	s.send(BatchResponse{
		ID:        request.ID,
		Results:   wire,
		Count:     len(wire),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleAction(request Request) {
	start := time.Now()
	switch request.Action {
	case "health":
		s.send(InfoResponse{ID: request.ID, Status: "ok"})
	case "get_info":
		stats := s.completer.Stats()
		s.send(InfoResponse{
			ID:       request.ID,
			Status:   "ok",
			Words:    stats["totalWords"],
			Nodes:    stats["nodes"],
			Leaves:   stats["leaves"],
			MaxDepth: stats["maxDepth"],
			Workers:  stats["workers"],
		})
	default:
		s.metrics.failed("action")
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
		return
	}
	s.metrics.observe("action", time.Since(start))
}

// checkPrefix returns a client-facing reason when prefix is out of bounds
func (s *Server) checkPrefix(prefix string) string {
	cfg := s.config.Server
	switch {
	case prefix == "" && cfg.MinPrefix > 0:
		return "Missing 'p' parameter"
	case len(prefix) < cfg.MinPrefix:
		return fmt.Sprintf("Prefix must be at least %d characters", cfg.MinPrefix)
	case cfg.MaxPrefix > 0 && len(prefix) > cfg.MaxPrefix:
		return fmt.Sprintf("Prefix exceeds maximum length of %d characters", cfg.MaxPrefix)
	}
	return ""
}

// limit clamps a requested limit to the configured maximum; 0 asks for the maximum
func (s *Server) limit(requested int) int {
	maxLimit := s.config.Server.MaxLimit
	if requested <= 0 || (maxLimit > 0 && requested > maxLimit) {
		return maxLimit
	}
	return requested
}

func toWire(suggestions []suggest.Suggestion) []CompletionSuggestion {
	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Index: sg.Index, Rank: ranks[i]}
	}
	return out
}

// send encodes response onto the output stream
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
