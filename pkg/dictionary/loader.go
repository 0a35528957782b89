/*
Package dictionary reads ordered word lists for the trie builder.

Two formats are understood: plain text with one word per line, and the
chunked binary files (dict_0001.bin, dict_0002.bin, ...) holding a word count
header followed by length-prefixed words. Word order is kept exactly as read,
since it decides the trie's shape.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/charmap"
)

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// errFull stops a read once MaxWords words are accepted.
var errFull = errors.New("word limit reached")

// Options controls how words are read and filtered.
type Options struct {
	// Encoding of text files, EncodingUTF8 (default) or EncodingLatin1.
	Encoding string
	// MaxWords caps accepted words; 0 means no cap.
	MaxWords int
	// Lowercase folds words before validation.
	Lowercase bool
	// SkipInvalid drops words the trie would reject instead of failing.
	SkipInvalid bool
}

// LoadStats counts what a Loader has seen.
type LoadStats struct {
	Read     int
	Accepted int
	Skipped  int
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// Loader accumulates words from one or more sources into a list the trie
// builder accepts.
type Loader struct {
	opts      Options
	validator *trie.Validator
	words     []string
	stats     LoadStats
}

func NewLoader(opts Options) *Loader {
	if opts.Encoding == "" {
		opts.Encoding = EncodingUTF8
	}
	return &Loader{
		opts:      opts,
		validator: trie.NewValidator(),
	}
}

// Words returns the accepted words in load order.
func (l *Loader) Words() []string {
	return l.words
}

func (l *Loader) Stats() LoadStats {
	return l.stats
}

// Load reads path, which may be a text file, a single chunk file or a
// directory of chunk files, and returns the accepted words.
func Load(path string, opts Options) ([]string, error) {
	l := NewLoader(opts)
	if err := l.LoadPath(path); err != nil {
		return nil, err
	}
	s := l.Stats()
	log.Debugf("Loaded %d words from %s (read %d, skipped %d)", s.Accepted, path, s.Read, s.Skipped)
	return l.Words(), nil
}

// LoadPath dispatches on what path points to.
func (l *Loader) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadChunks(path)
	}

	format, err := DetectFileFormat(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatChunk:
		return l.LoadChunk(path)
	case FormatText:
		return l.LoadTextFile(path)
	}
	return fmt.Errorf("unsupported format for %s", path)
}

// LoadTextFile reads a text word list in the configured encoding.
func (l *Loader) LoadTextFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	if err := l.LoadText(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadText reads one word per line. Blank lines and lines starting with '#'
// are ignored; surrounding whitespace is trimmed.
func (l *Loader) LoadText(r io.Reader) error {
	switch strings.ToLower(l.opts.Encoding) {
	case EncodingUTF8, "utf8":
	case EncodingLatin1, "iso-8859-1":
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	default:
		return fmt.Errorf("unknown encoding %q", l.opts.Encoding)
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := l.add(line); err != nil {
			if errors.Is(err, errFull) {
				return nil
			}
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

// LoadChunks reads every dict_NNNN.bin file in dir in chunk ID order.
func (l *Loader) LoadChunks(dir string) error {
	chunks, err := AvailableChunks(dir)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", dir)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	for _, chunk := range chunks {
		if l.full() {
			break
		}
		if err := l.LoadChunk(chunk.Filename); err != nil {
			return err
		}
	}
	return nil
}

// LoadChunk reads one binary chunk: an int32 word count, then per word a
// uint16 length, the word bytes and a uint16 rank. Ranks are read past.
func (l *Loader) LoadChunk(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header of %s: %w", filename, err)
	}
	log.Debugf("Loading chunk %s with %d words", filename, totalEntries)

	for count := 0; count < int(totalEntries); count++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk %s ended after %d of %d words", filename, count, totalEntries)
				break
			}
			return fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}

		if err := l.add(string(wordBytes)); err != nil {
			if errors.Is(err, errFull) {
				return nil
			}
			return fmt.Errorf("%s entry %d: %w", filename, count, err)
		}
	}
	return nil
}

func (l *Loader) full() bool {
	return l.opts.MaxWords > 0 && len(l.words) >= l.opts.MaxWords
}

func (l *Loader) add(word string) error {
	if l.full() {
		return errFull
	}
	l.stats.Read++
	if l.opts.Lowercase {
		word = strings.ToLower(word)
	}
	if err := l.validator.Add(word); err != nil {
		if !l.opts.SkipInvalid {
			return err
		}
		l.stats.Skipped++
		log.Warnf("Skipping word %q: %v", word, err)
		return nil
	}
	l.words = append(l.words, word)
	l.stats.Accepted++
	return nil
}

// AvailableChunks scans dir for chunk files, sorted by chunk ID.
func AvailableChunks(dir string) ([]ChunkInfo, error) {
	pattern := filepath.Join(dir, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		id, ok := parseChunkID(filepath.Base(file))
		if !ok {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   id,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// parseChunkID extracts 1 from dict_0001.bin.
func parseChunkID(basename string) (int, bool) {
	if !strings.HasPrefix(basename, "dict_") || !strings.HasSuffix(basename, ".bin") {
		return 0, false
	}
	idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, false
	}
	return id, true
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}
