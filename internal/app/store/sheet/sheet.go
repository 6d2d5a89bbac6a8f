// Package sheet is the spreadsheet contract the record stores are written
// against. A Workbook is a set of named worksheets; each worksheet is a header
// row followed by data rows. Data rows are addressed by position, the 0-based
// index of the row below the header, so the physical 1-based row number is
// position + RowOffset.
//
// Three backends implement Workbook: an xlsx file (excelize), a Google
// spreadsheet (Sheets API v4) and an in-memory workbook for tests. Wrap any of
// them with NewCachedWorkbook to serve reads from a short-lived cache.
package sheet

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
)

// RowOffset converts a data-row position into a physical row number: one for
// the header row and one because spreadsheet rows are 1-based.
const RowOffset = 2

// ErrTableNotFound is returned when a worksheet does not exist.
var ErrTableNotFound = fmt.Errorf("worksheet %w", apperr.ErrNotFound)

// ErrOutOfRange is returned when a position does not address a data row.
var ErrOutOfRange = fmt.Errorf("row position %w", apperr.ErrNotFound)

// Workbook is a spreadsheet document.
type Workbook interface {
	// Table opens an existing worksheet. Missing worksheets yield
	// ErrTableNotFound.
	Table(ctx context.Context, name string) (Table, error)
	// EnsureTable creates the worksheet if needed and writes header into
	// row 1 when the worksheet is empty. Existing data is never touched.
	EnsureTable(ctx context.Context, name string, header []string) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Table is a single worksheet.
type Table interface {
	Name() string
	// Values returns every row including the header, in stored order.
	// Callers must not modify the returned slices.
	Values(ctx context.Context) ([][]string, error)
	// Append adds row after the last row.
	Append(ctx context.Context, row []string) error
	// Update overwrites the data row at position.
	Update(ctx context.Context, position int, row []string) error
	// Delete removes the data row at position; later rows shift up by one.
	Delete(ctx context.Context, position int) error
}

// PhysicalRow returns the 1-based spreadsheet row of a data-row position.
func PhysicalRow(position int) int {
	return position + RowOffset
}

/*─────────────────────────────────────────────────────────────────────────────*
| Reading rows                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// Rows is a worksheet split into its header and data rows. Cells are looked
// up by header name so reordered or extra columns still decode.
type Rows struct {
	index map[string]int
	Data  [][]string
}

// Split separates values (as returned by Table.Values) into a Rows.
func Split(values [][]string) Rows {
	rs := Rows{index: map[string]int{}}
	if len(values) == 0 {
		return rs
	}
	for i, h := range values[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := rs.index[key]; key != "" && !dup {
			rs.index[key] = i
		}
	}
	rs.Data = values[1:]
	return rs
}

// Has reports whether the header contains col.
func (rs Rows) Has(col string) bool {
	_, ok := rs.index[col]
	return ok
}

// Cell returns the trimmed value of col in row, or "" if absent.
func (rs Rows) Cell(row []string, col string) string {
	i, ok := rs.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Int returns col in row coerced with ToInt.
func (rs Rows) Int(row []string, col string) int {
	return ToInt(rs.Cell(row, col))
}

// ToInt coerces a cell to an int. Integers parse as-is, decimals such as
// "3.0" truncate, and anything else (blank, text, NaN, out of int range)
// becomes 0.
func ToInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0
	}
	return int(f)
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Cache bypass                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

type freshKey struct{}

// Fresh marks ctx so that Values on a cached table reads through to the
// backend. Id assignment and positional writes use it.
func Fresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

// IsFresh reports whether ctx was marked with Fresh.
func IsFresh(ctx context.Context) bool {
	v, _ := ctx.Value(freshKey{}).(bool)
	return v
}

func checkPosition(position, dataRows int) error {
	if position < 0 || position >= dataRows {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, position, dataRows)
	}
	return nil
}

func connErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrConnection, err)
}
