// Package weighttable reads the modulus weight table.
//
// Every line describes a sort code range, its check type, 14 weights and an
// optional exception number:
//
//	010004 016715 MOD11    0    0    0    0    0    0    8    7    6    5    4    3    2    1
//	070116 070116 MOD11    0    0    0    0    0    0    7    6    5    4    3    2    1    1  12
package weighttable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nkiryanov/modcheck/internal/apperrors"
	"github.com/nkiryanov/modcheck/internal/models"
)

const (
	fieldsWithoutException = 3 + models.DetailLength
	fieldsWithException    = fieldsWithoutException + 1
)

// Table keeps entries in file order. The order matters: the first entry of a
// sort code is its first check.
type Table struct {
	entries []models.WeightEntry
}

func New(entries []models.WeightEntry) *Table {
	return &Table{entries: append([]models.WeightEntry(nil), entries...)}
}

// Lookup returns every entry whose range contains the sort code
func (t *Table) Lookup(sortCode int) []models.WeightEntry {
	var found []models.WeightEntry
	for _, e := range t.entries {
		if e.Contains(sortCode) {
			found = append(found, e)
		}
	}
	return found
}

func (t *Table) Entries() []models.WeightEntry {
	return append([]models.WeightEntry(nil), t.entries...)
}

func (t *Table) Len() int {
	return len(t.entries)
}

func Parse(r io.Reader) (*Table, error) {
	var entries []models.WeightEntry
	scanner := bufio.NewScanner(r)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		entry, err := parseEntry(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrMalformedTable, lineNum, err)
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading weight table: %w", err)
	}

	return New(entries), nil
}

func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error while opening weight table. Err: %w", err)
	}
	defer f.Close() // nolint:errcheck

	return Parse(f)
}

func parseEntry(fields []string) (models.WeightEntry, error) {
	var e models.WeightEntry

	if len(fields) != fieldsWithoutException && len(fields) != fieldsWithException {
		return e, fmt.Errorf("expected %d or %d fields, got %d", fieldsWithoutException, fieldsWithException, len(fields))
	}

	start, err := parseSortCode(fields[0])
	if err != nil {
		return e, err
	}
	end, err := parseSortCode(fields[1])
	if err != nil {
		return e, err
	}
	if start > end {
		return e, fmt.Errorf("range start %s is after end %s", fields[0], fields[1])
	}

	checkType, err := models.ParseCheckType(fields[2])
	if err != nil {
		return e, err
	}

	var weights models.Weights
	for i := range weights {
		w, err := strconv.Atoi(fields[3+i])
		if err != nil {
			return e, fmt.Errorf("weight %d: %w", i+1, err)
		}
		weights[i] = w
	}

	exc := models.ExceptionNone
	if len(fields) == fieldsWithException {
		n, err := strconv.Atoi(fields[fieldsWithoutException])
		if err != nil || n < 1 {
			return e, fmt.Errorf("invalid exception %q", fields[fieldsWithoutException])
		}
		exc = models.Exception(n)
	}

	return models.WeightEntry{
		Start:     start,
		End:       end,
		CheckType: checkType,
		Exception: exc,
		Weights:   weights,
	}, nil
}

func parseSortCode(s string) (int, error) {
	if len(s) != 6 {
		return 0, fmt.Errorf("sort code %q must have 6 digits", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("sort code %q must have 6 digits", s)
	}
	return n, nil
}
