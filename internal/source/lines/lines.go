// Package lines reads picker candidates from a text stream.
package lines

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kk-code-lab/rpick/internal/candidate"
)

const maxLineBytes = 1 << 20

// Read consumes r to EOF and returns one item per non-blank line.
// Trailing carriage returns are dropped. UTF-16 input with a BOM is
// transcoded; binary input fails with ErrBinaryInput.
func Read(r io.Reader) ([]candidate.Item, error) {
	decoded, err := decodeStream(r)
	if err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}

	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var items []candidate.Item
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, candidate.Item{
			Name: line,
			Exec: line,
			Kind: candidate.KindLine,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return items, nil
}
