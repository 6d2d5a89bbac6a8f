package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the worksheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

// XLSXWorkbook stores worksheets in a local .xlsx file. Every write is saved
// to disk before it returns. A single mutex serializes all access to the
// file, so it is safe for concurrent use within one process.
type XLSXWorkbook struct {
	mu   sync.Mutex
	path string
	f    *excelize.File
}

// OpenXLSX opens path, creating an empty workbook (and parent directories)
// if the file does not exist yet.
func OpenXLSX(path string) (*XLSXWorkbook, error) {
	f, err := excelize.OpenFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, connErr("create workbook dir", err)
			}
		}
		f = excelize.NewFile()
		if err := f.SaveAs(path); err != nil {
			_ = f.Close()
			return nil, connErr("create workbook", err)
		}
	default:
		return nil, connErr("open workbook", err)
	}
	return &XLSXWorkbook{path: path, f: f}, nil
}

// Path returns the workbook file path.
func (wb *XLSXWorkbook) Path() string { return wb.path }

func (wb *XLSXWorkbook) Table(_ context.Context, name string) (Table, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if !wb.hasSheet(name) {
		return nil, ErrTableNotFound
	}
	return &xlsxTable{wb: wb, name: name}, nil
}

func (wb *XLSXWorkbook) EnsureTable(_ context.Context, name string, header []string) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	if !wb.hasSheet(name) {
		// A freshly created file only holds the empty default sheet; take it
		// over instead of leaving it behind.
		if wb.onlyEmptyDefault() {
			if err := wb.f.SetSheetName(defaultSheet, name); err != nil {
				return connErr("rename sheet "+name, err)
			}
		} else if _, err := wb.f.NewSheet(name); err != nil {
			return connErr("create sheet "+name, err)
		}
	}

	rows, err := wb.f.GetRows(name)
	if err != nil {
		return connErr("read "+name, err)
	}
	if len(rows) > 0 {
		return nil
	}
	if err := wb.setRow(name, 1, header); err != nil {
		return err
	}
	return wb.save()
}

// Ping verifies the file is still readable.
func (wb *XLSXWorkbook) Ping(context.Context) error {
	if _, err := os.Stat(wb.path); err != nil {
		return connErr("stat workbook", err)
	}
	return nil
}

func (wb *XLSXWorkbook) Close() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return wb.f.Close()
}

func (wb *XLSXWorkbook) hasSheet(name string) bool {
	idx, err := wb.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (wb *XLSXWorkbook) onlyEmptyDefault() bool {
	list := wb.f.GetSheetList()
	if len(list) != 1 || list[0] != defaultSheet {
		return false
	}
	rows, err := wb.f.GetRows(defaultSheet)
	return err == nil && len(rows) == 0
}

// setRow writes row starting at column A of the 1-based physical row. Cells
// past len(row) up to width are blanked so a shorter row fully replaces a
// longer one.
func (wb *XLSXWorkbook) setRow(name string, physical int, row []string, width ...int) error {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	for len(width) > 0 && len(cells) < width[0] {
		cells = append(cells, "")
	}
	cell, err := excelize.CoordinatesToCellName(1, physical)
	if err != nil {
		return fmt.Errorf("row %d: %w", physical, err)
	}
	if err := wb.f.SetSheetRow(name, cell, &cells); err != nil {
		return connErr("write "+name, err)
	}
	return nil
}

func (wb *XLSXWorkbook) save() error {
	if err := wb.f.Save(); err != nil {
		return connErr("save workbook", err)
	}
	return nil
}

type xlsxTable struct {
	wb   *XLSXWorkbook
	name string
}

func (t *xlsxTable) Name() string { return t.name }

func (t *xlsxTable) Values(context.Context) ([][]string, error) {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	return t.rows()
}

func (t *xlsxTable) rows() ([][]string, error) {
	rows, err := t.wb.f.GetRows(t.name)
	if err != nil {
		return nil, connErr("read "+t.name, err)
	}
	return rows, nil
}

func (t *xlsxTable) Append(_ context.Context, row []string) error {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	rows, err := t.rows()
	if err != nil {
		return err
	}
	if err := t.wb.setRow(t.name, len(rows)+1, row); err != nil {
		return err
	}
	return t.wb.save()
}

func (t *xlsxTable) Update(_ context.Context, position int, row []string) error {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	rows, err := t.rows()
	if err != nil {
		return err
	}
	if err := checkPosition(position, len(rows)-1); err != nil {
		return err
	}
	old := rows[position+1]
	if err := t.wb.setRow(t.name, PhysicalRow(position), row, len(old)); err != nil {
		return err
	}
	return t.wb.save()
}

func (t *xlsxTable) Delete(_ context.Context, position int) error {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	rows, err := t.rows()
	if err != nil {
		return err
	}
	if err := checkPosition(position, len(rows)-1); err != nil {
		return err
	}
	if err := t.wb.f.RemoveRow(t.name, PhysicalRow(position)); err != nil {
		return connErr("delete row "+t.name, err)
	}
	return t.wb.save()
}
