// Package substitution reads the sort code substitution table used by exception 5.
//
// Each line of the table holds the original sort code and its substitute
// separated by whitespace:
//
//	938173 938017
package substitution

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nkiryanov/modcheck/internal/apperrors"
)

// Table is read-only once built and safe for concurrent use
type Table struct {
	substitutes map[string]string
}

func New(substitutes map[string]string) *Table {
	copied := make(map[string]string, len(substitutes))
	for k, v := range substitutes {
		copied[k] = v
	}
	return &Table{substitutes: copied}
}

// Lookup returns the substitute for the sort code
func (t *Table) Lookup(sortCode string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.substitutes[sortCode]
	return v, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.substitutes)
}

// Pairs returns a copy of the table content
func (t *Table) Pairs() map[string]string {
	if t == nil {
		return map[string]string{}
	}
	return New(t.substitutes).substitutes
}

// Parse reads the table. The reader may use CRLF or LF line endings
func Parse(r io.Reader) (*Table, error) {
	substitutes := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if len(fields) != 2 || !isSortCode(fields[0]) || !isSortCode(fields[1]) {
			return nil, fmt.Errorf("%w: line %d: expected two 6 digit sort codes, got %q", apperrors.ErrMalformedTable, lineNum, scanner.Text())
		}

		substitutes[fields[0]] = fields[1]
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading substitution table: %w", err)
	}

	return &Table{substitutes: substitutes}, nil
}

// Load parses the table from file
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error while opening substitution table. Err: %w", err)
	}
	defer f.Close() // nolint:errcheck

	return Parse(f)
}

func isSortCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
