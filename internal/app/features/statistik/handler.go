// internal/app/features/statistik/handler.go
package statistik

import (
	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"go.uber.org/zap"
)

// Handler serves the statistik page and its Excel export.
type Handler struct {
	Src    reportqueries.Sources
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(src reportqueries.Sources, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Src:    src,
		ErrLog: errLog,
		Log:    logger,
	}
}
