package gates_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/presensihub/internal/app/system/gates"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/presensihub/internal/testutil"
)

func TestRequireLogin_Authenticated(t *testing.T) {
	req := testutil.AsUser(httptest.NewRequest("GET", "/dashboard", nil), testutil.MentorUser(3, "Dedi", "d@x.com"))
	rec := httptest.NewRecorder()

	result := gates.RequireLogin(rec, req)

	if !result.OK {
		t.Fatal("expected OK for a signed-in user")
	}
	if result.Role != models.RoleMentor || result.Name != "Dedi" || result.MentorID != 3 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRequireLogin_NotAuthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard?from=2024-01-01", nil)
	rec := httptest.NewRecorder()

	result := gates.RequireLogin(rec, req)

	if result.OK {
		t.Error("expected OK to be false")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login?return=") || !strings.Contains(loc, "dashboard") {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireLogin_HTMX(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	gates.RequireLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("HX-Redirect = %q", hx)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		req      func() *http.Request
		wantOK   bool
		wantCode int
		wantLoc  string
	}{
		{
			name:   "admin passes",
			req:    func() *http.Request { return testutil.AsUser(httptest.NewRequest("GET", "/mentors", nil), testutil.AdminUser()) },
			wantOK: true, wantCode: http.StatusOK,
		},
		{
			name:   "mentor sent home",
			req:    func() *http.Request { return testutil.AsUser(httptest.NewRequest("GET", "/mentors", nil), testutil.MentorUser(1, "D", "d@x.com")) },
			wantOK: false, wantCode: http.StatusSeeOther, wantLoc: "/",
		},
		{
			name:   "anonymous sent to login",
			req:    func() *http.Request { return httptest.NewRequest("GET", "/mentors", nil) },
			wantOK: false, wantCode: http.StatusSeeOther, wantLoc: "/login?return=%2Fmentors",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got := gates.RequireAdmin(rec, tt.req())
			if got.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", got.OK, tt.wantOK)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
				t.Errorf("Location = %q, want %q", loc, tt.wantLoc)
			}
		})
	}
}

func TestRequireMentor(t *testing.T) {
	rec := httptest.NewRecorder()
	req := testutil.AsUser(httptest.NewRequest("GET", "/presensi", nil), testutil.AdminUser())
	if gates.RequireMentor(rec, req).OK {
		t.Error("admin must not pass the mentor gate")
	}
	if rec.Header().Get("Location") != "/" {
		t.Errorf("Location = %q, want /", rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	req = testutil.AsUser(httptest.NewRequest("GET", "/presensi", nil), testutil.MentorUser(2, "Dedi", "d@x.com"))
	res := gates.RequireMentor(rec, req)
	if !res.OK || res.MentorID != 2 {
		t.Errorf("unexpected result %+v", res)
	}
}
