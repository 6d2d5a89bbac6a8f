// internal/domain/models/roles.go
package models

// Session roles. These strings are stored in the session cookie.
const (
	RoleAdmin  = "Admin"
	RoleMentor = "Mentor"
)

// DefaultSiteName is shown in the page header.
const DefaultSiteName = "Dashboard Presensi BKPK"
