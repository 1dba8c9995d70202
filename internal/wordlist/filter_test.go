package wordlist

import "testing"

func TestFilterSpanish(t *testing.T) {
	tests := []struct {
		word string
		keep bool
	}{
		{"casa", true},
		{"ñandú", true},
		{"pingüino", true},
		{"qué", true},
		{"", false},
		{"don't", false},
		{"año2024", false},
		{"CASA", false},
		{"naïve", false},
	}
	keep := FilterForLang("es")
	for _, tc := range tests {
		if got := keep(tc.word); got != tc.keep {
			t.Fatalf("filter(%q) = %v, want %v", tc.word, got, tc.keep)
		}
	}
}

func TestFilterForLangUnknownKeepsAll(t *testing.T) {
	keep := FilterForLang("xx")
	if !keep("anything-at-all!") {
		t.Fatalf("unknown language must keep everything")
	}
}

func TestFilter(t *testing.T) {
	words := Filter([]string{"casa", "x9", "sol"}, FilterForLang("es"))
	if len(words) != 2 || words[0] != "casa" || words[1] != "sol" {
		t.Fatalf("unexpected filtered words: %v", words)
	}
}
