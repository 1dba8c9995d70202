package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
)

//go:embed data/es.txt
var embeddedSpanish []byte

// Embedded returns the built-in Spanish word list, so practice works before
// any download.
func Embedded() ([]string, error) {
	return readWords(bufio.NewScanner(bytes.NewReader(embeddedSpanish)))
}
