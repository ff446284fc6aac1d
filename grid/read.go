package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read parses a text board from r. Trailing whitespace is trimmed from each
// line and blank lines are skipped, so boards may end with a newline or be
// separated from surrounding text.
func Read(r io.Reader) (*Grid, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: read board: %w", err)
	}
	return Parse(lines)
}

// ReadFile parses the text board stored at path.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grid: open board: %w", err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
