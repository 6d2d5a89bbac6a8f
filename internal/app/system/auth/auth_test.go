package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/presensihub/internal/testutil"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireSignedIn(okHandler(&called))

	req := httptest.NewRequest("GET", "/dashboard?from=2024-01-01", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler must not run without a session")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?return=") {
		t.Errorf("expected redirect to /login, got %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireSignedIn(okHandler(&called))

	req := httptest.NewRequest("GET", "/statistik/rekap.xlsx", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireSignedIn(okHandler(&called))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireRole_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireRole(models.RoleAdmin)(okHandler(&called))

	req := httptest.NewRequest("GET", "/mentors", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireRole_MentorOnAdminPage_RedirectsHome(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireRole(models.RoleAdmin)(okHandler(&called))

	req := httptest.NewRequest("GET", "/mentors", nil)
	req.Header.Set("Accept", "text/html")
	req = testutil.AsUser(req, testutil.MentorUser(7, "Dedi", "dedi@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Fatal("admin handler ran for a mentor session")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestRequireRole_WrongRole_API_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireRole(models.RoleMentor)(okHandler(&called))

	req := httptest.NewRequest("POST", "/presensi", nil)
	req.Header.Set("Accept", "application/json")
	req = testutil.AsUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("handler must not run for the wrong role")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.RequireRole(models.RoleAdmin)(okHandler(&called))

	req := httptest.NewRequest("GET", "/mentors", nil)
	req = testutil.AsUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	user, ok := auth.CurrentUser(req)
	if ok || user != nil {
		t.Errorf("expected no user, got %+v", user)
	}
}

// signIn runs SignIn and returns the cookies it set.
func signIn(t *testing.T, sm *auth.SessionManager, u auth.SessionUser) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	if _, err := sm.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}
	return cookies
}

// loadUser sends cookies through LoadSessionUser and returns what it found.
func loadUser(sm *auth.SessionManager, cookies []*http.Cookie) (*auth.SessionUser, bool) {
	var (
		got *auth.SessionUser
		ok  bool
	)
	h := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestSignIn_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	id := 7
	cookies := signIn(t, sm, auth.SessionUser{Role: models.RoleMentor, Name: "Dedi", Email: "dedi@x.com", MentorID: &id})

	u, ok := loadUser(sm, cookies)
	if !ok {
		t.Fatal("expected user after sign in")
	}
	if u.Role != models.RoleMentor || u.Name != "Dedi" || u.Email != "dedi@x.com" {
		t.Errorf("unexpected user %+v", u)
	}
	if u.MentorID == nil || *u.MentorID != 7 {
		t.Errorf("mentor id not restored: %v", u.MentorID)
	}
	if u.SID == "" {
		t.Error("expected a session id")
	}
}

func TestSignIn_AdminHasNoMentorID(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, *testutil.AdminUser())

	u, ok := loadUser(sm, cookies)
	if !ok || !u.IsAdmin() {
		t.Fatalf("expected admin, got %+v", u)
	}
	if u.MentorID != nil {
		t.Errorf("admin should have no mentor id, got %d", *u.MentorID)
	}
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signIn(t, sm, *testutil.AdminUser())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	var expired *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			expired = c
		}
	}
	if expired == nil || expired.MaxAge >= 0 {
		t.Fatalf("expected an expired cookie, got %+v", expired)
	}
	if _, ok := loadUser(sm, []*http.Cookie{expired}); ok {
		t.Error("user still loaded after sign out")
	}
}

func TestLoadSessionUser_TamperedCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	if _, ok := loadUser(sm, []*http.Cookie{{Name: "test-session", Value: "garbage"}}); ok {
		t.Error("tampered cookie must not yield a user")
	}
}

func TestFlashes(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	sm.AddFlash(rec, httptest.NewRequest("POST", "/mentors", nil), "Mentor berhasil ditambahkan.")

	req := httptest.NewRequest("GET", "/mentors", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	got := sm.Flashes(httptest.NewRecorder(), req)
	if len(got) != 1 || got[0] != "Mentor berhasil ditambahkan." {
		t.Errorf("Flashes = %v", got)
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Authenticator                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func newAuthenticator(t *testing.T) (*auth.Authenticator, *testutil.Fixtures) {
	t.Helper()
	fx := testutil.NewFixtures(t, testutil.NewWorkbook(t))
	return auth.NewAuthenticator("admin@sttnf.ac.id", fx.Mentors, zap.NewNop()), fx
}

func TestLogin_Admin(t *testing.T) {
	a, _ := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := a.Login(ctx, "  admin@sttnf.ac.id ", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Role != models.RoleAdmin || u.Name != "Admin" {
		t.Errorf("unexpected user %+v", u)
	}
	if u.MentorID != nil {
		t.Error("admin must not carry a mentor id")
	}
}

func TestLogin_AdminWrongEmail(t *testing.T) {
	a, _ := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := a.Login(ctx, "someone@sttnf.ac.id", models.RoleAdmin)
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if apperr.Message(err) != "Email Admin salah." {
		t.Errorf("message = %q", apperr.Message(err))
	}
}

func TestLogin_EmptyEmail(t *testing.T) {
	a, _ := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := a.Login(ctx, "   ", models.RoleMentor)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLogin_Mentor(t *testing.T) {
	a, fx := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateMentor(ctx, "Rina", "rina@x.com")
	dedi := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")

	u, err := a.Login(ctx, "dedi@x.com", models.RoleMentor)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Name != "Dedi" || u.MentorID == nil || *u.MentorID != dedi.ID {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestLogin_MentorDuplicateEmailUsesFirst(t *testing.T) {
	a, fx := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := fx.CreateMentor(ctx, "Dedi", "dedi@x.com")
	fx.CreateMentor(ctx, "Dedi Dua", "dedi@x.com")

	u, err := a.Login(ctx, "dedi@x.com", models.RoleMentor)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if *u.MentorID != first.ID {
		t.Errorf("expected first mentor %d, got %d", first.ID, *u.MentorID)
	}
}

func TestLogin_MentorNotFound_NoCookie(t *testing.T) {
	a, _ := newAuthenticator(t)
	sm := newTestSessionManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := httptest.NewRecorder()
	u, err := a.Login(ctx, "notamentor@x.com", models.RoleMentor)
	if err == nil {
		_, _ = sm.SignIn(rec, httptest.NewRequest("POST", "/login", nil), u)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no session cookie may be written on a failed login")
	}
}

func TestLogin_MentorStoreDown(t *testing.T) {
	a, fx := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.Workbook().Err = errors.New("dial tcp: timeout")
	_, err := a.Login(ctx, "dedi@x.com", models.RoleMentor)
	if !errors.Is(err, apperr.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if !strings.Contains(apperr.Message(err), "Data mentor tidak dapat dimuat") {
		t.Errorf("message = %q", apperr.Message(err))
	}
}

func TestLogin_UnknownRole(t *testing.T) {
	a, _ := newAuthenticator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := a.Login(ctx, "admin@sttnf.ac.id", "Mentee"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
