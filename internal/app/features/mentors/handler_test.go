package mentors_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	"github.com/dalemusser/presensihub/internal/app/features/mentors"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*mentors.Handler, *testutil.Fixtures) {
	t.Helper()
	logger := zap.NewNop()
	fx := testutil.NewFixtures(t, testutil.NewWorkbook(t))
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return mentors.NewHandler(fx.Mentors, sm, uierrors.NewErrorLogger(logger), logger), fx
}

func post(path string, form url.Values, id int) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.AsUser(req, testutil.AdminUser())
	if id != 0 {
		req = testutil.WithChiURLParam(req, "id", strconv.Itoa(id))
	}
	return req
}

// run calls fn and swallows the template panic of error re-renders; the
// status is written before rendering starts.
func run(fn func(w http.ResponseWriter, r *http.Request), req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		fn(rec, req)
	}()
	return rec
}

func TestHandleCreate(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := run(h.HandleCreate, post("/mentors", url.Values{"nama": {"<b>Dedi</b>"}, "email": {"dedi@x.com"}}, 0))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/mentors" {
		t.Errorf("Location = %q, want /mentors", loc)
	}
	all, err := fx.Mentors.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 || all[0].ID != 1 || all[0].Nama != "Dedi" || all[0].Email != "dedi@x.com" {
		t.Errorf("stored = %+v, want one sanitized mentor with id 1", all)
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"empty nama", url.Values{"nama": {"  "}, "email": {"dedi@x.com"}}},
		{"empty email", url.Values{"nama": {"Dedi"}, "email": {""}}},
		{"malformed email", url.Values{"nama": {"Dedi"}, "email": {"dedi-at-x"}}},
		{"markup only", url.Values{"nama": {"<script>x</script>"}, "email": {"dedi@x.com"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fx := newTestHandler(t)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			rec := run(h.HandleCreate, post("/mentors", tt.form, 0))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if all, _ := fx.Mentors.List(ctx); len(all) != 0 {
				t.Errorf("nothing should be written, got %+v", all)
			}
		})
	}
}

func TestHandleEdit(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateMentor(ctx, "Rina", "rina@x.com")
	dedi := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")

	form := url.Values{"pos": {"1"}, "nama": {"Dedi S."}, "email": {"dedi.s@x.com"}}
	rec := run(h.HandleEdit, post("/mentors/2/edit", form, dedi.ID))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	all, _ := fx.Mentors.List(ctx)
	if all[1].ID != dedi.ID || all[1].Nama != "Dedi S." || all[1].Email != "dedi.s@x.com" {
		t.Errorf("row 1 = %+v", all[1])
	}
	if all[0].Nama != "Rina" {
		t.Errorf("row 0 changed: %+v", all[0])
	}
}

func TestHandleEdit_PositionMismatch(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	rina := fx.CreateMentor(ctx, "Rina", "rina@x.com")
	dedi := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")

	// Position 0 holds Rina, not Dedi.
	form := url.Values{"pos": {"0"}, "nama": {"Dedi S."}, "email": {"dedi.s@x.com"}}
	rec := run(h.HandleEdit, post("/mentors/2/edit", form, dedi.ID))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	all, _ := fx.Mentors.List(ctx)
	if all[0] != rina {
		t.Errorf("row 0 = %+v, want unchanged %+v", all[0], rina)
	}
}

func TestHandleEdit_BadPosition(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	dedi := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")

	rec := run(h.HandleEdit, post("/mentors/1/edit", url.Values{"pos": {"x"}, "nama": {"D"}, "email": {"d@x.com"}}, dedi.ID))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateMentor(ctx, "Rina", "rina@x.com")
	dedi := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")
	tono := fx.CreateMentor(ctx, "Tono", "tono@x.com")

	rec := run(h.HandleDelete, post("/mentors/2/delete", url.Values{"pos": {"1"}}, dedi.ID))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	all, _ := fx.Mentors.List(ctx)
	if len(all) != 2 || all[1] != tono {
		t.Errorf("after delete = %+v, want Tono shifted to position 1", all)
	}
}

func TestHandleDelete_Stale(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx.CreateMentor(ctx, "Rina", "rina@x.com")

	rec := run(h.HandleDelete, post("/mentors/7/delete", url.Values{"pos": {"0"}}, 7))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if all, _ := fx.Mentors.List(ctx); len(all) != 1 {
		t.Errorf("nothing should be deleted, got %+v", all)
	}
}

func TestServeEdit_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/mentors/9/edit", nil)
	req = testutil.WithChiURLParam(testutil.AsUser(req, testutil.AdminUser()), "id", "9")
	rec := run(h.ServeEdit, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
