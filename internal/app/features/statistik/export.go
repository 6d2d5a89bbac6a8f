// internal/app/features/statistik/export.go
package statistik

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/gates"
	"github.com/dalemusser/presensihub/internal/app/system/stats"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	exportSheet    = "Rekap Presensi Detail"
	exportFilename = "rekap_presensi_detail.xlsx"
	xlsxType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exportHeader lists the recap columns. Mentor is only present for admins.
func exportHeader(withMentor bool) []any {
	h := []any{"mentee_id", "Nama Mentee"}
	if withMentor {
		h = append(h, "Mentor")
	}
	return append(h, "Jml Hadir", "Jml Sakit", "Jml Izin", "Jml Alfa", "% Hadir")
}

func exportRow(p stats.PersonSummary, withMentor bool) []any {
	row := []any{p.MenteeID, p.Nama}
	if withMentor {
		row = append(row, p.Mentor)
	}
	return append(row, p.Hadir, p.Sakit, p.Izin, p.Alfa, p.PersenHadir)
}

// buildRecapWorkbook writes rows into a fresh workbook with one sheet.
func buildRecapWorkbook(rows []stats.PersonSummary, withMentor bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#e2e8f0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	header := exportHeader(withMentor)
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		f.Close()
		return nil, err
	}

	for i, p := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(p, withMentor)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := f.SetColWidth(exportSheet, "B", "C", 24); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func setDownloadHeaders(w http.ResponseWriter, contentType, filename string, size int) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(size))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ServeExport handles GET /statistik/rekap.xlsx. The file is built per
// request and never stored.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireLogin(w, r)
	if !g.OK {
		return
	}
	role, mentorID := g.Role, g.MentorID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "statistik export")
	defer cancel()

	snap, err := reportqueries.Load(ctx, h.Src)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "statistik export: load tables", err, "/statistik")
		return
	}

	v := scopeFor(snap, role, mentorID, query.Get(r, "mentor"))
	if msg := v.notice(); msg != "" {
		h.ErrLog.LogBadRequest(w, r, "statistik export: nothing to export", nil, msg, "/statistik")
		return
	}
	rows := v.recap()

	f, err := buildRecapWorkbook(rows, v.admin)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "statistik export: build workbook", err, "Gagal membuat file Excel.", "/statistik")
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.ErrLog.LogServerError(w, r, "statistik export: write workbook", err, "Gagal membuat file Excel.", "/statistik")
		return
	}

	h.Log.Info("statistik export",
		zap.String("role", role),
		zap.Int("mentor_filter", v.filter),
		zap.Int("rows", len(rows)))
	setDownloadHeaders(w, xlsxType, exportFilename, buf.Len())
	_, _ = w.Write(buf.Bytes())
}
