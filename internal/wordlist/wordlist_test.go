package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "es.txt")
	if err := os.WriteFile(path, []byte("casa\n\n  perro  \nñandú\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	want := []string{"casa", "perro", "ñandú"}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %v", len(want), words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], words[i])
		}
	}
}

func TestLoadWordsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	if _, err := LoadWords(path); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEmbedded(t *testing.T) {
	words, err := Embedded()
	if err != nil {
		t.Fatalf("embedded list: %v", err)
	}
	if len(words) < 100 {
		t.Fatalf("embedded list suspiciously small: %d words", len(words))
	}
	keep := FilterForLang("es")
	for _, w := range words {
		if !keep(w) {
			t.Fatalf("embedded word %q fails the Spanish filter", w)
		}
	}
}
