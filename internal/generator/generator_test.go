package generator

import (
	"strings"
	"testing"
	"unicode"
)

func TestGenerateCount(t *testing.T) {
	g := NewSeeded(42)
	words := g.Generate([]string{"casa", "perro", "sol"}, 10, 0, 0, nil)
	if len(words) != 10 {
		t.Fatalf("expected 10 words, got %d", len(words))
	}
	for _, w := range words {
		if w != "casa" && w != "perro" && w != "sol" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := NewSeeded(7).Generate([]string{"uno", "dos", "tres"}, 20, 0.5, 0.5, []rune(".,?"))
	b := NewSeeded(7).Generate([]string{"uno", "dos", "tres"}, 20, 0.5, 0.5, []rune(".,?"))
	if strings.Join(a, " ") != strings.Join(b, " ") {
		t.Fatalf("same seed must generate the same text")
	}
}

func TestGenerateCapsAlways(t *testing.T) {
	g := NewSeeded(1)
	words := g.Generate([]string{"ñandú"}, 5, 1.0, 0, nil)
	for _, w := range words {
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			t.Fatalf("expected capitalized word, got %q", w)
		}
	}
}

func TestGeneratePunctPairsWrap(t *testing.T) {
	g := NewSeeded(1)
	words := g.Generate([]string{"como"}, 50, 0, 1.0, []rune("?"))
	for _, w := range words {
		if w != "¿como?" {
			t.Fatalf("question mark must wrap in a pair, got %q", w)
		}
	}
	words = g.Generate([]string{"hola"}, 50, 0, 1.0, []rune("!"))
	for _, w := range words {
		if w != "¡hola!" {
			t.Fatalf("exclamation mark must wrap in a pair, got %q", w)
		}
	}
}

func TestGeneratePunctTrailing(t *testing.T) {
	g := NewSeeded(1)
	words := g.Generate([]string{"sol"}, 20, 0, 1.0, []rune("."))
	for _, w := range words {
		if w != "sol." {
			t.Fatalf("plain punctuation must trail the word, got %q", w)
		}
	}
}

func TestGenerateWeightedPrefersWeakChars(t *testing.T) {
	g := NewSeeded(3)
	corpus := []string{"aaaa", "bbbb"}
	weak := map[rune]struct{}{'a': {}}
	words := g.GenerateWeighted(corpus, 600, 0, 0, nil, weak, 5.0)
	counts := map[string]int{}
	for _, w := range words {
		counts[w]++
	}
	if counts["aaaa"] <= counts["bbbb"] {
		t.Fatalf("expected weak-char words to dominate: %v", counts)
	}
}

func TestGenerateWeightedUniformWithoutWeakSet(t *testing.T) {
	g := NewSeeded(3)
	words := g.GenerateWeighted([]string{"uno", "dos"}, 10, 0, 0, nil, nil, 2.0)
	if len(words) != 10 {
		t.Fatalf("expected 10 words, got %d", len(words))
	}
}
