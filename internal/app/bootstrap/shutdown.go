// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown closes the workbook. The xlsx backend flushes nothing here since
// every write is saved as it happens.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Workbook != nil {
		logger.Info("closing workbook", zap.String("backend", deps.Backend))
		if err := deps.Workbook.Close(); err != nil {
			logger.Error("workbook close failed", zap.Error(err))
			return err
		}
	}
	return nil
}
