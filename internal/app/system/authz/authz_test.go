package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/app/system/authz"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/presensihub/internal/testutil"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	role, name, mentorID, ok := authz.UserCtx(req)
	if ok || role != "" || name != "" || mentorID != 0 {
		t.Errorf("UserCtx() = %q, %q, %d, %v", role, name, mentorID, ok)
	}
}

func TestUserCtx_Admin(t *testing.T) {
	req := testutil.AsUser(httptest.NewRequest("GET", "/test", nil), testutil.AdminUser())

	role, name, mentorID, ok := authz.UserCtx(req)
	if !ok || role != models.RoleAdmin || name != "Admin" || mentorID != 0 {
		t.Errorf("UserCtx() = %q, %q, %d, %v", role, name, mentorID, ok)
	}
	if !authz.IsAdmin(req) || authz.IsMentor(req) {
		t.Error("admin misclassified")
	}
}

func TestUserCtx_Mentor(t *testing.T) {
	req := testutil.AsUser(httptest.NewRequest("GET", "/test", nil), testutil.MentorUser(4, "Dedi", "dedi@x.com"))

	role, name, mentorID, ok := authz.UserCtx(req)
	if !ok || role != models.RoleMentor || name != "Dedi" || mentorID != 4 {
		t.Errorf("UserCtx() = %q, %q, %d, %v", role, name, mentorID, ok)
	}
	if !authz.IsMentor(req) || authz.IsAdmin(req) {
		t.Error("mentor misclassified")
	}
}

func TestUserCtx_MentorWithoutID_FailsClosed(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/test", nil), &auth.SessionUser{
		Role: models.RoleMentor,
		Name: "Dedi",
	})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("mentor session without mentor id must not count as signed in")
	}
}

func TestHasAnyRole(t *testing.T) {
	req := testutil.AsUser(httptest.NewRequest("GET", "/test", nil), testutil.MentorUser(1, "Dedi", "d@x.com"))

	tests := []struct {
		roles []string
		want  bool
	}{
		{[]string{"Mentor"}, true},
		{[]string{" mentor "}, true},
		{[]string{"Admin", "Mentor"}, true},
		{[]string{"Admin"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := authz.HasAnyRole(req, tt.roles...); got != tt.want {
			t.Errorf("HasAnyRole(%v) = %v, want %v", tt.roles, got, tt.want)
		}
	}

	if authz.HasRole(httptest.NewRequest("GET", "/", nil), "Admin") {
		t.Error("HasRole without a user should be false")
	}
}
