package sheet_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWorkbook_Contract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "presensi.xlsx")
	wb, err := sheet.OpenXLSX(path)
	if err != nil {
		t.Fatalf("OpenXLSX: %v", err)
	}
	defer wb.Close()

	exerciseTable(t, wb)
}

func TestXLSXWorkbook_PersistsAndDropsDefaultSheet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "presensi.xlsx")

	wb, err := sheet.OpenXLSX(path)
	if err != nil {
		t.Fatalf("OpenXLSX: %v", err)
	}
	if err := wb.EnsureTable(ctx, "mentee", []string{"id", "nama", "kelompok", "mentor_id"}); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	tbl, _ := wb.Table(ctx, "mentee")
	if err := tbl.Append(ctx, []string{"1", "Ani", "A", "2"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	if list := f.GetSheetList(); len(list) != 1 || list[0] != "mentee" {
		t.Errorf("sheets = %v, want [mentee]", list)
	}
	rows, err := f.GetRows("mentee")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "Ani" {
		t.Errorf("rows = %v", rows)
	}
}

func TestXLSXWorkbook_UpdateBlanksTrailingCells(t *testing.T) {
	ctx := context.Background()
	wb, err := sheet.OpenXLSX(filepath.Join(t.TempDir(), "w.xlsx"))
	if err != nil {
		t.Fatalf("OpenXLSX: %v", err)
	}
	defer wb.Close()

	_ = wb.EnsureTable(ctx, "mentor", []string{"id", "nama", "email"})
	tbl, _ := wb.Table(ctx, "mentor")
	_ = tbl.Append(ctx, []string{"1", "Budi", "b@x.id"})

	if err := tbl.Update(ctx, 0, []string{"1", "Budi"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	vals, _ := tbl.Values(ctx)
	rs := sheet.Split(vals)
	if got := rs.Cell(rs.Data[0], "email"); got != "" {
		t.Errorf("email after short update = %q, want empty", got)
	}
}
