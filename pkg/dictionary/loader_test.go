package dictionary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
)

func writeChunk(t *testing.T, path string, words []string) {
	t.Helper()
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(len(words)))
	for i, w := range words {
		binary.Write(&buf, binary.LittleEndian, uint16(len(w)))
		buf.WriteString(w)
		binary.Write(&buf, binary.LittleEndian, uint16(i+1))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing chunk: %v", err)
	}
}

func writeText(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing word list: %v", err)
	}
	return path
}

func TestLoadText(t *testing.T) {
	path := writeText(t, t.TempDir(), "words.txt", "# animals\nbear\n\n  bull \nbell\n")

	words, err := Load(path, Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []string{"bear", "bull", "bell"}
	if !slices.Equal(words, want) {
		t.Errorf("Load = %v, want %v", words, want)
	}
}

func TestLoadTextLatin1(t *testing.T) {
	// "café" encoded as ISO-8859-1
	path := writeText(t, t.TempDir(), "words.txt", "caf\xe9\ncab\n")

	words, err := Load(path, Options{Encoding: EncodingLatin1})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []string{"café", "cab"}
	if !slices.Equal(words, want) {
		t.Errorf("Load = %q, want %q", words, want)
	}
}

func TestLoadTextUnknownEncoding(t *testing.T) {
	l := NewLoader(Options{Encoding: "ebcdic"})
	if err := l.LoadText(strings.NewReader("bear\n")); err == nil {
		t.Errorf("expected an error for an unknown encoding")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeText(t, t.TempDir(), "words.txt", "bear\nbe\nbull\n")

	_, err := Load(path, Options{})
	if !errors.Is(err, trie.ErrInvalidArgument) {
		t.Fatalf("error = %v, want trie.ErrInvalidArgument", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %q, want it to name line 2", err)
	}
}

func TestLoadSkipInvalid(t *testing.T) {
	l := NewLoader(Options{SkipInvalid: true, Lowercase: true})
	input := "Bear\nbe\nbull\nbear\nbears\n\nbell\n"
	if err := l.LoadText(strings.NewReader(input)); err != nil {
		t.Fatalf("LoadText error: %v", err)
	}

	want := []string{"bear", "bull", "bell"}
	if got := l.Words(); !slices.Equal(got, want) {
		t.Errorf("Words = %v, want %v", got, want)
	}
	if s := l.Stats(); s != (LoadStats{Read: 6, Accepted: 3, Skipped: 3}) {
		t.Errorf("Stats = %+v", s)
	}
	if _, err := trie.BuildTrie(l.Words()); err != nil {
		t.Errorf("loaded words do not build: %v", err)
	}
}

func TestLoadMaxWords(t *testing.T) {
	l := NewLoader(Options{MaxWords: 2})
	if err := l.LoadText(strings.NewReader("bear\nbull\nbell\n")); err != nil {
		t.Fatalf("LoadText error: %v", err)
	}
	if got := l.Words(); !slices.Equal(got, []string{"bear", "bull"}) {
		t.Errorf("Words = %v", got)
	}
}

func TestLoadChunks(t *testing.T) {
	dir := t.TempDir()
	writeChunk(t, filepath.Join(dir, "dict_0002.bin"), []string{"stock", "stop"})
	writeChunk(t, filepath.Join(dir, "dict_0001.bin"), []string{"bear", "bull"})
	writeText(t, dir, "notes.txt", "ignored\n")

	chunks, err := AvailableChunks(dir)
	if err != nil {
		t.Fatalf("AvailableChunks error: %v", err)
	}
	if len(chunks) != 2 || chunks[0].ChunkID != 1 || chunks[1].WordCount != 2 {
		t.Errorf("AvailableChunks = %+v", chunks)
	}

	words, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []string{"bear", "bull", "stock", "stop"}
	if !slices.Equal(words, want) {
		t.Errorf("Load = %v, want %v", words, want)
	}

	limited, err := Load(dir, Options{MaxWords: 3})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !slices.Equal(limited, want[:3]) {
		t.Errorf("Load with MaxWords = %v, want %v", limited, want[:3])
	}
}

func TestLoadChunksEmptyDir(t *testing.T) {
	if _, err := Load(t.TempDir(), Options{}); err == nil {
		t.Errorf("expected an error for a directory without chunks")
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	chunk := filepath.Join(dir, "dict_0001.bin")
	writeChunk(t, chunk, []string{"bear"})
	text := writeText(t, dir, "words.txt", "bear\n")
	other := writeText(t, dir, "words.csv", "bear\n")
	short := filepath.Join(dir, "broken.bin")
	os.WriteFile(short, []byte{1}, 0644)

	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{chunk, FormatChunk, false},
		{text, FormatText, false},
		{other, FormatUnknown, true},
		{short, FormatUnknown, true},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			got, err := DetectFileFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFileFormat error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFileFormat = %v, want %v", got, tt.want)
			}
		})
	}
}
