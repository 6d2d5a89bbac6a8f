// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Store backends.
const (
	BackendXLSX   = "xlsx"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from PRESENSIHUB_* environment variables, config files or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework side: ports, TLS, log level, CORS and body limits.
type AppConfig struct {
	// Spreadsheet backend
	StoreBackend          string // xlsx, sheets or memory
	XLSXPath              string // workbook file for the xlsx backend
	SheetsSpreadsheetID   string // Google spreadsheet id for the sheets backend
	SheetsCredentialsFile string // service-account JSON file
	SheetsCredentialsJSON string // service-account JSON inline (wins over the file)
	CacheTTL              time.Duration

	// The one admin account. Its email is the only credential.
	AdminEmail string

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: presensihub-session)
	SessionDomain string // Cookie domain (blank means current host)
	SessionMaxAge time.Duration

	// Timezone decides "today" on the attendance form.
	Timezone string

	CSRFKey            string // 32-byte key for gorilla/csrf
	LoginRatePerMinute int

	// Spreadsheet I/O timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
