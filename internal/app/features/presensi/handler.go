// internal/app/features/presensi/handler.go
package presensi

import (
	"time"

	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	menteestore "github.com/dalemusser/presensihub/internal/app/store/mentees"
	presensistore "github.com/dalemusser/presensihub/internal/app/store/presensi"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the mentor's attendance form.
type Handler struct {
	Mentees    *menteestore.Store
	Presensi   *presensistore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	// Now supplies the form's default date.
	Now func() time.Time
}

func NewHandler(
	mentees *menteestore.Store,
	presensi *presensistore.Store,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Mentees:    mentees,
		Presensi:   presensi,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
		Now:        time.Now,
	}
}
