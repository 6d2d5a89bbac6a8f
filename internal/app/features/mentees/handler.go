// internal/app/features/mentees/handler.go
package mentees

import (
	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	menteestore "github.com/dalemusser/presensihub/internal/app/store/mentees"
	mentorstore "github.com/dalemusser/presensihub/internal/app/store/mentors"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the mentee worksheet pages. Mentors is read only, for the
// picker and for showing each mentee's mentor name.
type Handler struct {
	Mentees    *menteestore.Store
	Mentors    *mentorstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(
	mentees *menteestore.Store,
	mentors *mentorstore.Store,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Mentees:    mentees,
		Mentors:    mentors,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}
