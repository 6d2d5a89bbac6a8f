// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/dalemusser/presensihub/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PresensiHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: store_backend, admin_email, etc.
//   - Environment variables: PRESENSIHUB_STORE_BACKEND, PRESENSIHUB_ADMIN_EMAIL, etc.
//   - Command-line flags: --store_backend, --admin_email, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: BackendXLSX, Desc: "Spreadsheet backend: 'xlsx', 'sheets' or 'memory'"},
	{Name: "xlsx_path", Default: "./data/presensi.xlsx", Desc: "Workbook file for the xlsx backend"},
	{Name: "sheets_spreadsheet_id", Default: "", Desc: "Google spreadsheet id for the sheets backend"},
	{Name: "sheets_credentials_file", Default: "", Desc: "Path to the Google service-account JSON"},
	{Name: "sheets_credentials_json", Default: "", Desc: "Google service-account JSON (inline)"},
	{Name: "cache_ttl", Default: "60s", Desc: "How long worksheet reads are cached (1s..1h)"},

	{Name: "admin_email", Default: "", Desc: "Email of the admin account"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "presensihub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "timezone", Default: timezones.Default, Desc: "Zone used for today's date on the attendance form"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-change-me-0123", Desc: "32-byte CSRF key"},
	{Name: "login_rate_per_minute", Default: 10, Desc: "Login attempts allowed per IP per minute"},

	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-table reads"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for page loads and single-row writes"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for batch writes and exports"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, PRESENSIHUB_* for app) and
// flags with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PRESENSIHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend:          strings.ToLower(strings.TrimSpace(appValues.String("store_backend"))),
		XLSXPath:              appValues.String("xlsx_path"),
		SheetsSpreadsheetID:   appValues.String("sheets_spreadsheet_id"),
		SheetsCredentialsFile: appValues.String("sheets_credentials_file"),
		SheetsCredentialsJSON: appValues.String("sheets_credentials_json"),
		CacheTTL:              appValues.Duration("cache_ttl", sheet.DefaultCacheTTL),

		AdminEmail: strings.TrimSpace(appValues.String("admin_email")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		Timezone: strings.TrimSpace(appValues.String("timezone")),

		CSRFKey:            appValues.String("csrf_key"),
		LoginRatePerMinute: appValues.Int("login_rate_per_minute"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects configurations that could not serve a request.
// It runs before any backend is opened.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case BackendXLSX:
		if strings.TrimSpace(appCfg.XLSXPath) == "" {
			return fmt.Errorf("store_backend %q requires xlsx_path", appCfg.StoreBackend)
		}
	case BackendSheets:
		if strings.TrimSpace(appCfg.SheetsSpreadsheetID) == "" {
			return fmt.Errorf("store_backend %q requires sheets_spreadsheet_id", appCfg.StoreBackend)
		}
		if appCfg.SheetsCredentialsFile == "" && appCfg.SheetsCredentialsJSON == "" {
			return fmt.Errorf("store_backend %q requires sheets_credentials_file or sheets_credentials_json", appCfg.StoreBackend)
		}
	case BackendMemory:
		logger.Warn("memory backend: data is lost on restart")
	default:
		return fmt.Errorf("unknown store_backend %q (want xlsx, sheets or memory)", appCfg.StoreBackend)
	}

	if appCfg.AdminEmail == "" {
		return fmt.Errorf("admin_email is required")
	}
	if _, err := mail.ParseAddress(appCfg.AdminEmail); err != nil {
		return fmt.Errorf("admin_email %q is not a valid address: %w", appCfg.AdminEmail, err)
	}

	if appCfg.CacheTTL < time.Second || appCfg.CacheTTL > time.Hour {
		return fmt.Errorf("cache_ttl %s out of range (1s..1h)", appCfg.CacheTTL)
	}
	if _, err := timezones.Location(appCfg.Timezone); err != nil {
		return err
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if appCfg.LoginRatePerMinute < 1 {
		return fmt.Errorf("login_rate_per_minute must be at least 1")
	}
	return nil
}
