// Package timesfile reads and writes the plain-text times format: one
// elapsed-seconds value per line, oldest first. Trailing averages are never
// written; the history recomputes them after a load.
package timesfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cubetui/internal/model"
)

// Read parses a times file. Parsing is all-or-nothing: any malformed line
// fails the whole read so a partial history is never applied.
func Read(r io.Reader) ([]model.Solve, error) {
	scanner := bufio.NewScanner(r)
	var solves []model.Solve
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		elapsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid elapsed time %q", line, text)
		}
		solves = append(solves, model.Solve{Elapsed: elapsed})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read times: %w", err)
	}
	return solves, nil
}

// Write serializes solves in the line format, oldest first.
func Write(w io.Writer, solves []model.Solve) error {
	writer := bufio.NewWriter(w)
	for _, s := range solves {
		if _, err := fmt.Fprintf(writer, "%.3f\n", s.Elapsed); err != nil {
			return fmt.Errorf("failed to write times: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush times: %w", err)
	}
	return nil
}
