package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	menteestore "github.com/dalemusser/presensihub/internal/app/store/mentees"
	mentorstore "github.com/dalemusser/presensihub/internal/app/store/mentors"
	presensistore "github.com/dalemusser/presensihub/internal/app/store/presensi"
	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// TestContext returns a context with a short timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// NewWorkbook returns an in-memory workbook holding the three worksheets
// with their headers and no data.
func NewWorkbook(t *testing.T) *sheet.MemoryWorkbook {
	t.Helper()
	wb := sheet.NewMemoryWorkbook()
	wb.Seed(mentorstore.TableName, mentorstore.Columns)
	wb.Seed(menteestore.TableName, menteestore.Columns)
	wb.Seed(presensistore.TableName, presensistore.Columns)
	return wb
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	t  *testing.T
	wb *sheet.MemoryWorkbook

	Mentors  *mentorstore.Store
	Mentees  *menteestore.Store
	Presensi *presensistore.Store
}

// NewFixtures creates a new Fixtures instance over wb.
func NewFixtures(t *testing.T, wb *sheet.MemoryWorkbook) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:        t,
		wb:       wb,
		Mentors:  mentorstore.New(wb),
		Mentees:  menteestore.New(wb),
		Presensi: presensistore.New(wb),
	}
}

// Workbook returns the underlying workbook for direct access in tests.
func (f *Fixtures) Workbook() *sheet.MemoryWorkbook {
	return f.wb
}

// CreateMentor appends a mentor and returns it with its assigned id.
func (f *Fixtures) CreateMentor(ctx context.Context, nama, email string) models.Mentor {
	f.t.Helper()
	m, err := f.Mentors.Create(ctx, models.Mentor{Nama: nama, Email: email})
	if err != nil {
		f.t.Fatalf("create mentor %q: %v", nama, err)
	}
	return m
}

// CreateMentee appends a mentee assigned to mentorID.
func (f *Fixtures) CreateMentee(ctx context.Context, nama, kelompok string, mentorID int) models.Mentee {
	f.t.Helper()
	m, err := f.Mentees.Create(ctx, models.Mentee{Nama: nama, Kelompok: kelompok, MentorID: mentorID})
	if err != nil {
		f.t.Fatalf("create mentee %q: %v", nama, err)
	}
	return m
}

// CreateAttendance appends one attendance record.
func (f *Fixtures) CreateAttendance(ctx context.Context, menteeID int, tanggal string, pertemuan int, status string) models.Attendance {
	f.t.Helper()
	a, err := f.Presensi.Create(ctx, models.Attendance{
		MenteeID:  menteeID,
		Tanggal:   tanggal,
		Pertemuan: pertemuan,
		Status:    status,
	})
	if err != nil {
		f.t.Fatalf("create attendance for mentee %d: %v", menteeID, err)
	}
	return a
}
