package tracker

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseLocators reads a newline-delimited list of issue URLs.
// Surrounding whitespace is trimmed; blank lines and lines starting with
// '#' are dropped.
func ParseLocators(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading issue list: %w", err)
	}
	return urls, nil
}
