// internal/app/features/mentors/handler.go
package mentors

import (
	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	mentorstore "github.com/dalemusser/presensihub/internal/app/store/mentors"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the mentor worksheet pages.
type Handler struct {
	Mentors    *mentorstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(mentors *mentorstore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Mentors:    mentors,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}
