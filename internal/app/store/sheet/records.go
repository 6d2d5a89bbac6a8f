package sheet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
)

// IDColumn is the identifier column every record worksheet carries.
const IDColumn = "id"

// NextID returns max+1 over the id cells made only of digits, or 1 when
// there are none. Blank, negative, decimal and text ids are ignored.
func NextID(rs Rows) int {
	max, found := 0, false
	for _, row := range rs.Data {
		cell := rs.Cell(row, IDColumn)
		if !IsDigits(cell) {
			continue
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			continue
		}
		if !found || n > max {
			max, found = n, true
		}
	}
	if !found {
		return 1
	}
	return max + 1
}

// Encode lays out fields in the worksheet's header order. With no header
// (an empty worksheet) the fallback column order is used. Header columns
// with no matching field are written blank.
func (rs Rows) Encode(fields map[string]string, fallback []string) []string {
	if len(rs.index) == 0 {
		row := make([]string, len(fallback))
		for i, col := range fallback {
			row[i] = fields[col]
		}
		return row
	}
	width := 0
	for _, i := range rs.index {
		if i+1 > width {
			width = i + 1
		}
	}
	row := make([]string, width)
	for col, i := range rs.index {
		row[i] = fields[col]
	}
	return row
}

// ReadFresh returns the worksheet's rows bypassing any cache.
func ReadFresh(ctx context.Context, t Table) (Rows, error) {
	vals, err := t.Values(Fresh(ctx))
	if err != nil {
		return Rows{}, err
	}
	return Split(vals), nil
}

// VerifyPosition checks that the data row at position still carries
// expectedID. It returns ErrOutOfRange when position is past the end and
// apperr.ErrPositionMismatch when another id now sits there.
func VerifyPosition(rs Rows, position, expectedID int) error {
	if err := checkPosition(position, len(rs.Data)); err != nil {
		return err
	}
	got := rs.Int(rs.Data[position], IDColumn)
	if got != expectedID {
		return fmt.Errorf("position %d holds id %d, want %d: %w",
			position, got, expectedID, apperr.ErrPositionMismatch)
	}
	return nil
}

// PositionOf returns the position of the first data row whose id equals id.
func PositionOf(rs Rows, id int) (int, bool) {
	for i, row := range rs.Data {
		if rs.Int(row, IDColumn) == id {
			return i, true
		}
	}
	return 0, false
}

// Records performs id assignment and positional writes on one worksheet.
// All writes through a Records are serialized, so two Creates in the same
// process never receive the same id. Writers in other processes are not
// coordinated with.
type Records struct {
	wb      Workbook
	name    string
	columns []string

	mu sync.Mutex
}

// NewRecords binds a worksheet name and its canonical column order.
func NewRecords(wb Workbook, name string, columns []string) *Records {
	return &Records{wb: wb, name: name, columns: columns}
}

// Name returns the worksheet name.
func (r *Records) Name() string { return r.name }

// Columns returns the canonical header.
func (r *Records) Columns() []string { return r.columns }

// Rows reads the worksheet, through the cache unless ctx is Fresh.
func (r *Records) Rows(ctx context.Context) (Rows, error) {
	t, err := r.wb.Table(ctx, r.name)
	if err != nil {
		return Rows{}, fmt.Errorf("%s: %w", r.name, err)
	}
	vals, err := t.Values(ctx)
	if err != nil {
		return Rows{}, fmt.Errorf("%s: %w", r.name, err)
	}
	return Split(vals), nil
}

// NextID reads the worksheet fresh and returns the next id.
func (r *Records) NextID(ctx context.Context) (int, error) {
	rs, err := r.Rows(Fresh(ctx))
	if err != nil {
		return 0, err
	}
	return NextID(rs), nil
}

// Create assigns the next id, builds the row with fields(id) and appends it.
func (r *Records) Create(ctx context.Context, fields func(id int) map[string]string) (int, error) {
	ids, err := r.CreateMany(ctx, 1, func(_, id int) map[string]string { return fields(id) })
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// CreateMany appends n rows, each with its own id. A failed append does not
// stop the remaining rows: ids[i] is 0 for a row that was not written and the
// returned error joins every failure. Ids are never reused within a batch,
// since a failed append may still have landed.
func (r *Records) CreateMany(ctx context.Context, n int, fields func(i, id int) map[string]string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := r.wb.Table(ctx, r.name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	rs, err := ReadFresh(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}

	next := NextID(rs)
	ids := make([]int, n)
	var errs []error
	for i := 0; i < n; i++ {
		id := next + i
		if err := t.Append(ctx, rs.Encode(fields(i, id), r.columns)); err != nil {
			errs = append(errs, fmt.Errorf("%s append id %d: %w", r.name, id, err))
			continue
		}
		ids[i] = id
	}
	return ids, errors.Join(errs...)
}

// UpdateAt overwrites the row at position after checking it still holds
// expectedID. The id cell itself is always rewritten with expectedID.
func (r *Records) UpdateAt(ctx context.Context, position, expectedID int, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, rs, err := r.verified(ctx, position, expectedID)
	if err != nil {
		return err
	}
	merged := make(map[string]string, len(fields)+1)
	// Keep columns the caller does not manage (legacy extras) intact.
	for col := range rs.index {
		merged[col] = rs.Cell(rs.Data[position], col)
	}
	for k, v := range fields {
		merged[k] = v
	}
	merged[IDColumn] = strconv.Itoa(expectedID)
	if err := t.Update(ctx, position, rs.Encode(merged, r.columns)); err != nil {
		return fmt.Errorf("%s update position %d: %w", r.name, position, err)
	}
	return nil
}

// DeleteAt removes the row at position after checking it still holds
// expectedID. Later rows shift up by one.
func (r *Records) DeleteAt(ctx context.Context, position, expectedID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, _, err := r.verified(ctx, position, expectedID)
	if err != nil {
		return err
	}
	if err := t.Delete(ctx, position); err != nil {
		return fmt.Errorf("%s delete position %d: %w", r.name, position, err)
	}
	return nil
}

func (r *Records) verified(ctx context.Context, position, expectedID int) (Table, Rows, error) {
	t, err := r.wb.Table(ctx, r.name)
	if err != nil {
		return nil, Rows{}, fmt.Errorf("%s: %w", r.name, err)
	}
	rs, err := ReadFresh(ctx, t)
	if err != nil {
		return nil, Rows{}, fmt.Errorf("%s: %w", r.name, err)
	}
	if err := VerifyPosition(rs, position, expectedID); err != nil {
		return nil, Rows{}, fmt.Errorf("%s: %w", r.name, err)
	}
	return t, rs, nil
}
