package wordlist

import "strings"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "es":
		return filterSpanish
	default:
		return func(string) bool { return true }
	}
}

// Filter keeps the words the filter accepts, preserving order.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if keep(word) {
			out = append(out, word)
		}
	}
	return out
}

func filterSpanish(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r >= 'a' && r <= 'z' {
			continue
		}
		switch r {
		case 'ñ', 'á', 'é', 'í', 'ó', 'ú', 'ü':
			continue
		}
		return false
	}
	return true
}
