package wordlist

import (
	"fmt"
	"os"
	"strings"
)

// Load reads a wordlist file fully into memory and returns its non-empty
// lines, trimmed, in file order. Duplicates are kept.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse splits raw wordlist content into candidates.
func Parse(raw string) []string {
	lines := strings.Split(raw, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words
}
