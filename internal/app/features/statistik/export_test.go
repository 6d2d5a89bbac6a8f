package statistik

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/presensihub/internal/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestBuildRecapWorkbook_AdminColumns(t *testing.T) {
	snap := snapshot()
	v := scopeFor(snap, models.RoleAdmin, 0, "")

	f, err := buildRecapWorkbook(v.recap(), true)
	if err != nil {
		t.Fatalf("buildRecapWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := []string{"mentee_id", "Nama Mentee", "Mentor", "Jml Hadir", "Jml Sakit", "Jml Izin", "Jml Alfa", "% Hadir"}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	for i, h := range want {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][1] != "Budi" || rows[1][2] != "Dedi" || rows[1][3] != "2" || rows[1][7] != "100" {
		t.Errorf("Budi row = %v", rows[1])
	}
	if rows[3][7] != "50" {
		t.Errorf("Cici persen hadir = %q, want 50", rows[3][7])
	}
}

func TestBuildRecapWorkbook_MentorColumns(t *testing.T) {
	snap := snapshot()
	v := scopeFor(snap, models.RoleMentor, 1, "")

	f, err := buildRecapWorkbook(v.recap(), false)
	if err != nil {
		t.Fatalf("buildRecapWorkbook: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(exportSheet)
	if len(rows) != 3 || len(rows[0]) != 7 || rows[0][2] != "Jml Hadir" {
		t.Errorf("rows = %v", rows)
	}
}

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	logger := zap.NewNop()
	fx := testutil.NewFixtures(t, testutil.NewWorkbook(t))
	src := reportqueries.Sources{Mentors: fx.Mentors, Mentees: fx.Mentees, Presensi: fx.Presensi}
	return NewHandler(src, uierrors.NewErrorLogger(logger), logger), fx
}

func TestServeExport_Download(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	dedi := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")
	budi := fx.CreateMentee(ctx, "Budi", "A", dedi.ID)
	fx.CreateAttendance(ctx, budi.ID, "2024-03-04", 1, models.StatusHadir)

	req := httptest.NewRequest(http.MethodGet, "/statistik/rekap.xlsx", nil)
	req = testutil.AsUser(req, testutil.MentorUser(dedi.ID, "Dedi", "dedi@x.com"))
	rec := httptest.NewRecorder()
	h.ServeExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=rekap_presensi_detail.xlsx" {
		t.Errorf("Content-Disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxType {
		t.Errorf("Content-Type = %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(exportSheet)
	if len(rows) != 2 || rows[1][1] != "Budi" {
		t.Errorf("rows = %v", rows)
	}
}

func TestServeExport_StoreDown(t *testing.T) {
	h, fx := newTestHandler(t)
	fx.Workbook().Err = errors.New("dial tcp: i/o timeout")

	req := httptest.NewRequest(http.MethodGet, "/statistik/rekap.xlsx", nil)
	req = testutil.AsUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeExport(rec, req)
	}()

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestServeExport_NothingToExport(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/statistik/rekap.xlsx", nil)
	req = testutil.AsUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeExport(rec, req)
	}()

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeStatistik_Anonymous(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeStatistik(rec, httptest.NewRequest(http.MethodGet, "/statistik", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}
