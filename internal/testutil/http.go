package testutil

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// AdminUser returns a signed-in admin.
func AdminUser() *auth.SessionUser {
	return &auth.SessionUser{
		Role:  models.RoleAdmin,
		Name:  "Admin",
		Email: "admin@sttnf.ac.id",
	}
}

// MentorUser returns a signed-in mentor with the given mentor id.
func MentorUser(id int, name, email string) *auth.SessionUser {
	mid := id
	return &auth.SessionUser{
		Role:     models.RoleMentor,
		Name:     name,
		Email:    email,
		MentorID: &mid,
	}
}

// AsUser attaches u to the request context as LoadSessionUser would.
func AsUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return auth.WithTestUser(r, u)
}
