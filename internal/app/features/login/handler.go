// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/app/system/ratelimit"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Authenticator is the login gate.
type Authenticator interface {
	Login(ctx context.Context, email, role string) (auth.SessionUser, error)
}

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Auth       Authenticator
	Limiter    *ratelimit.LoginLimiter // nil disables throttling
}

func NewHandler(
	sessionMgr *auth.SessionManager,
	authn Authenticator,
	limiter *ratelimit.LoginLimiter,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Auth:       authn,
		Limiter:    limiter,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Email     string
	Role      string
	Roles     []string
	ReturnURL string
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, email, role, ret, msg string) {
	if role == "" {
		role = models.RoleMentor
	}
	vm := viewdata.NewBaseVM(r, "Masuk", "/")
	vm.SetError(msg)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "login", loginFormData{
		BaseVM:    vm,
		Email:     email,
		Role:      role,
		Roles:     []string{models.RoleAdmin, models.RoleMentor},
		ReturnURL: ret,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	// Already signed in: nothing to do here.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/"), http.StatusSeeOther)
		return
	}

	h.renderForm(w, r, http.StatusOK, "", "", ret, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	role := strings.TrimSpace(r.FormValue("role"))
	ret := strings.TrimSpace(r.FormValue("return"))

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, email); !ok {
			h.Log.Warn("login rate limited", zap.String("ip", ratelimit.ClientIP(r)))
			h.renderForm(w, r, http.StatusTooManyRequests, email, role, ret, reason)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Auth.Login(ctx, email, role)
	if err != nil {
		status := http.StatusOK
		switch {
		case errors.Is(err, apperr.ErrConnection):
			h.Log.Error("login: mentor lookup failed", zap.Error(err))
			status = http.StatusServiceUnavailable
		default:
			h.Log.Info("login rejected", zap.String("role", role), zap.String("kind", apperr.Kind(err)))
		}
		h.renderForm(w, r, status, email, role, ret, apperr.Message(err))
		return
	}

	if _, err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.LogServerError(w, r, "save session", err, "Sesi tidak dapat disimpan.", "/login")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetEmail(email)
	}

	dest := urlutil.SafeReturn(ret, "", "/")
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
