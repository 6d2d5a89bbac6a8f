// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// UserCtx returns the user's role, name, mentor id (0 for the admin) and a
// found flag. Without a user it returns "", "", 0, false.
//
// A Mentor session without a mentor id is treated as signed out: every
// mentor view is scoped by that id, so there is nothing safe to show.
func UserCtx(r *http.Request) (role string, name string, mentorID int, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u == nil {
		return "", "", 0, false
	}
	if u.Role == models.RoleMentor && u.MentorID == nil {
		return "", "", 0, false
	}
	return u.Role, u.Name, u.MentorIDValue(), true
}

// IsAdmin reports whether the current request's user is the admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsMentor reports whether the current request's user is a mentor.
func IsMentor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleMentor
}
