// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	menteestore "github.com/dalemusser/presensihub/internal/app/store/mentees"
	mentorstore "github.com/dalemusser/presensihub/internal/app/store/mentors"
	presensistore "github.com/dalemusser/presensihub/internal/app/store/presensi"
	"github.com/dalemusser/presensihub/internal/app/store/sheet"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// ConnectDB opens the configured spreadsheet backend, wraps it in the read
// cache and builds the record stores.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	wb, err := openWorkbook(ctx, appCfg)
	if err != nil {
		logger.Error("open workbook failed", zap.String("backend", appCfg.StoreBackend), zap.Error(err))
		return DBDeps{}, err
	}
	logger.Info("workbook opened",
		zap.String("backend", appCfg.StoreBackend),
		zap.Duration("cache_ttl", appCfg.CacheTTL))

	return newDeps(wb, appCfg, logger), nil
}

func newDeps(wb sheet.Workbook, appCfg AppConfig, logger *zap.Logger) DBDeps {
	cached := sheet.NewCachedWorkbook(wb, appCfg.CacheTTL, logger)
	return DBDeps{
		Workbook: cached,
		Backend:  appCfg.StoreBackend,
		Mentors:  mentorstore.New(cached),
		Mentees:  menteestore.New(cached),
		Presensi: presensistore.New(cached),
	}
}

func openWorkbook(ctx context.Context, appCfg AppConfig) (sheet.Workbook, error) {
	switch appCfg.StoreBackend {
	case BackendXLSX:
		return sheet.OpenXLSX(appCfg.XLSXPath)
	case BackendSheets:
		creds, err := sheetsCredentials(ctx, appCfg)
		if err != nil {
			return nil, err
		}
		return sheet.OpenSheets(ctx, appCfg.SheetsSpreadsheetID, option.WithCredentials(creds))
	case BackendMemory:
		return sheet.NewMemoryWorkbook(), nil
	default:
		return nil, fmt.Errorf("unknown store_backend %q", appCfg.StoreBackend)
	}
}

// sheetsCredentials reads the service-account key. Inline JSON wins over
// the file.
func sheetsCredentials(ctx context.Context, appCfg AppConfig) (*google.Credentials, error) {
	data := []byte(appCfg.SheetsCredentialsJSON)
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(appCfg.SheetsCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read sheets credentials: %w", err)
		}
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}
	return creds, nil
}

// EnsureSchema creates any missing worksheet with its header row and writes
// the header into an existing empty worksheet. Data rows are never touched.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	tables := []struct {
		name   string
		header []string
	}{
		{mentorstore.TableName, mentorstore.Columns},
		{menteestore.TableName, menteestore.Columns},
		{presensistore.TableName, presensistore.Columns},
	}
	for _, t := range tables {
		if err := deps.Workbook.EnsureTable(ctx, t.name, t.header); err != nil {
			logger.Error("ensure worksheet failed", zap.String("table", t.name), zap.Error(err))
			return fmt.Errorf("ensure worksheet %s: %w", t.name, err)
		}
		logger.Debug("worksheet ready", zap.String("table", t.name))
	}
	return nil
}
