package wordlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestFetchFiltersAndLimits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("de 1000\nQue 900\nx9 800\nñandú 700\ncasa 600\nsol 500\n"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "es.txt")
	n, err := Fetch(context.Background(), srv.URL, path, "es", 4)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 words, got %d", n)
	}

	words, err := LoadWords(path)
	if err != nil {
		t.Fatalf("load fetched list: %v", err)
	}
	// Lowercased, filtered, frequency order preserved, capped at size.
	want := []string{"de", "que", "ñandú", "casa"}
	for i := range want {
		if words[i] != want[i] {
			t.Fatalf("index %d: expected %q, got %q", i, want[i], words[i])
		}
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "es.txt")
	if _, err := Fetch(context.Background(), srv.URL, path, "es", 10); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestFetchRejectsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("123 9\n456 8\n"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "es.txt")
	if _, err := Fetch(context.Background(), srv.URL, path, "es", 10); err == nil {
		t.Fatalf("expected error when nothing passes the filter")
	}
}

func TestFetchRejectsZeroSize(t *testing.T) {
	if _, err := Fetch(context.Background(), "http://unused.invalid", "unused", "es", 0); err == nil {
		t.Fatalf("expected error for non-positive size")
	}
}
