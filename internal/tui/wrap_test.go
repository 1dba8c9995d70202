package tui

import (
	"strings"
	"testing"

	"github.com/tecla-cli/tecla/internal/engine"
)

func charsFor(text string) []engine.CharResult {
	runes := []rune(text)
	chars := make([]engine.CharResult, len(runes))
	for i, r := range runes {
		chars[i] = engine.CharResult{Expected: r}
	}
	return chars
}

func typed(chars []engine.CharResult, i int, state engine.CharState) []engine.CharResult {
	chars[i].State = state
	chars[i].Typed = chars[i].Expected
	return chars
}

func TestBuildStyledCharsCursorUnderline(t *testing.T) {
	chars := typed(charsFor("ab"), 0, engine.StateCorrect)
	runes := buildStyledChars(chars, 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined cursor rune")
	}
}

func TestBuildStyledCharsKeepsTargetOnMistype(t *testing.T) {
	chars := charsFor("ab")
	chars[0].State = engine.StateIncorrect
	chars[0].Typed = 'x'
	runes := buildStyledChars(chars, 0)
	if !strings.Contains(runes[0].s, "a") {
		t.Fatalf("mistype must keep the target glyph, got %q", runes[0].s)
	}
	if runes[0].s != incorrectStyle.Underline(true).Render("a") {
		t.Fatalf("expected incorrect style at cursor, got %q", runes[0].s)
	}
}

func TestBuildStyledCharsCorrectedStyle(t *testing.T) {
	chars := charsFor("ab")
	chars[0].State = engine.StateCorrected
	runes := buildStyledChars(chars, 1)
	if runes[0].s != correctedStyle.Render("a") {
		t.Fatalf("expected corrected style, got %q", runes[0].s)
	}
}

func TestBuildStyledCharsWordHighlighting(t *testing.T) {
	chars := typed(charsFor("una dos"), 0, engine.StateCorrect)
	runes := buildStyledChars(chars, 1)
	if runes[0].s != correctStyle.Render("u") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("a") {
		t.Fatalf("expected current word style within the word")
	}
	if runes[4].s != pendingStyle.Render("d") {
		t.Fatalf("expected pending style for the next word")
	}
}

func TestBuildStyledCharsWrongSpaceDot(t *testing.T) {
	chars := charsFor("a b")
	chars[1].State = engine.StateIncorrect
	chars[1].Typed = 'x'
	runes := buildStyledChars(chars, 2)
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected dot for a mistyped space, got %q", runes[1].s)
	}
	if !runes[1].isSpace {
		t.Fatalf("mistyped space must stay a wrap boundary")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := buildStyledChars(charsFor("aaa bbb ccc"), 0)
	out := wrapStyledRunes(runes, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
}

func TestWrapStyledRunesLongWordHardBreaks(t *testing.T) {
	runes := buildStyledChars(charsFor("aaaaaa"), 0)
	out := wrapStyledRunes(runes, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected hard break into 2 lines, got %d: %q", len(lines), out)
	}
}

func TestWrapStyledRunesZeroWidthNoWrap(t *testing.T) {
	runes := buildStyledChars(charsFor("aa bb"), 0)
	out := wrapStyledRunes(runes, 0)
	if strings.Contains(out, "\n") {
		t.Fatalf("zero width must not wrap, got %q", out)
	}
}

func TestFindWords(t *testing.T) {
	words := findWords(charsFor(" una dos "))
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %+v", words)
	}
	if words[0].start != 1 || words[0].end != 4 {
		t.Fatalf("unexpected first word: %+v", words[0])
	}
	if words[1].start != 5 || words[1].end != 8 {
		t.Fatalf("unexpected second word: %+v", words[1])
	}
}

func TestWordForCursorBetweenWords(t *testing.T) {
	words := findWords(charsFor("una dos"))
	// Cursor on the separating space points at the next word.
	w := wordForCursor(words, 3)
	if w == nil || w.start != 4 {
		t.Fatalf("expected next word from the space, got %+v", w)
	}
	if w = wordForCursor(words, 99); w == nil || w.start != 4 {
		t.Fatalf("expected last word past the end, got %+v", w)
	}
}
