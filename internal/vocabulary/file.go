// Package vocabulary loads word lists for the autocomplete engine from files
// and from the Postgres vocabulary table.
package vocabulary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadWords parses a newline-delimited word list. Blank lines and lines
// starting with '#' are skipped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan word list: %w", err)
	}
	return words, nil
}

func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return words, nil
}
