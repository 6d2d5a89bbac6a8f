// Package gates provides authorization checks for HTTP handlers.
//
// Route groups use the SessionManager middleware (RequireSignedIn,
// RequireRole). Gates are for handlers that share a route group but need a
// narrower role, and for handlers that want the caller's role and mentor id
// back in one call. A failed gate has already written the response; the
// handler just returns.
package gates

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/presensihub/internal/app/system/authz"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role     string
	Name     string
	MentorID int
	OK       bool
}

// IsAdmin reports whether the checked user is the admin.
func (r Result) IsAdmin() bool { return r.Role == models.RoleAdmin }

// RequireLogin ensures a user is signed in. Otherwise the caller is sent to
// /login with a return parameter.
func RequireLogin(w http.ResponseWriter, r *http.Request) Result {
	role, name, mid, ok := authz.UserCtx(r)
	if !ok {
		toLogin(w, r)
		return Result{}
	}
	return Result{Role: role, Name: name, MentorID: mid, OK: true}
}

// RequireAdmin runs RequireLogin and then sends non-admins home.
func RequireAdmin(w http.ResponseWriter, r *http.Request) Result {
	return RequireAnyRole(w, r, models.RoleAdmin)
}

// RequireMentor runs RequireLogin and then sends non-mentors home.
func RequireMentor(w http.ResponseWriter, r *http.Request) Result {
	return RequireAnyRole(w, r, models.RoleMentor)
}

// RequireAnyRole ensures the user is signed in with one of allowedRoles.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, allowedRoles ...string) Result {
	res := RequireLogin(w, r)
	if !res.OK {
		return res
	}
	for _, allowed := range allowedRoles {
		if res.Role == allowed {
			return res
		}
	}
	toHome(w, r)
	return Result{}
}

func toLogin(w http.ResponseWriter, r *http.Request) {
	dest := "/login?return=" + url.QueryEscape(r.URL.RequestURI())
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func toHome(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusForbidden)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
