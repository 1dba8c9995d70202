package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultSourceURL is the frequency list fetched by `tecla wordlist`. Lines
// are "word count" pairs ordered by descending frequency.
const DefaultSourceURL = "https://raw.githubusercontent.com/hermitdave/FrequencyWords/master/content/2018/es/es_50k.txt"

const fetchTimeout = 60 * time.Second

// Fetch downloads a frequency list, keeps the first `size` words accepted by
// the language filter, and writes them one per line to path atomically.
func Fetch(ctx context.Context, url, path, lang string, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("size must be greater than 0")
	}
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch word list: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status fetching word list: %s", resp.Status)
	}

	keep := FilterForLang(lang)
	words := make([]string, 0, size)
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && len(words) < size {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		word := strings.ToLower(fields[0])
		if !keep(word) {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read word list: %w", err)
	}
	if len(words) == 0 {
		return 0, fmt.Errorf("no usable words in %s", url)
	}
	if err := writeWords(path, words); err != nil {
		return 0, err
	}
	return len(words), nil
}

func writeWords(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}
