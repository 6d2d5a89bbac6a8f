// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/presensihub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/presensihub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/presensihub/internal/app/features/health"
	homefeature "github.com/dalemusser/presensihub/internal/app/features/home"
	loginfeature "github.com/dalemusser/presensihub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/presensihub/internal/app/features/logout"
	menteesfeature "github.com/dalemusser/presensihub/internal/app/features/mentees"
	mentorsfeature "github.com/dalemusser/presensihub/internal/app/features/mentors"
	presensifeature "github.com/dalemusser/presensihub/internal/app/features/presensi"
	statistikfeature "github.com/dalemusser/presensihub/internal/app/features/statistik"
	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/app/system/ratelimit"
	"github.com/dalemusser/presensihub/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler.
//
// WAFFLE calls this after configuration, the workbook, schema setup and
// Startup have completed. It boots the template engine, installs the
// session and CSRF middleware, and mounts every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Dev mode enables template reloading.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	src := reportqueries.Sources{Mentors: deps.Mentors, Mentees: deps.Mentees, Presensi: deps.Presensi}

	r := chi.NewRouter()

	if !secure {
		r.Use(plaintextCSRF)
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed(logger))),
	))

	// Loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	healthHandler := healthfeature.NewHandler(deps.Workbook, deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler(sessionMgr, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	authn := auth.NewAuthenticator(appCfg.AdminEmail, deps.Mentors, logger)
	limiter := ratelimit.NewLoginLimiter(appCfg.LoginRatePerMinute)
	loginHandler := loginfeature.NewHandler(sessionMgr, authn, limiter, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Reports
	dashboardHandler := dashboardfeature.NewHandler(src, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	statistikHandler := statistikfeature.NewHandler(src, errLog, logger)
	r.Mount("/statistik", statistikfeature.Routes(statistikHandler, sessionMgr))

	// Master data (admin)
	mentorsHandler := mentorsfeature.NewHandler(deps.Mentors, sessionMgr, errLog, logger)
	r.Mount("/mentors", mentorsfeature.Routes(mentorsHandler, sessionMgr))

	menteesHandler := menteesfeature.NewHandler(deps.Mentees, deps.Mentors, sessionMgr, errLog, logger)
	r.Mount("/mentees", menteesfeature.Routes(menteesHandler, sessionMgr))

	// Attendance entry (mentor)
	loc, err := timezones.Location(appCfg.Timezone)
	if err != nil {
		return nil, err
	}
	presensiHandler := presensifeature.NewHandler(deps.Mentees, deps.Presensi, sessionMgr, errLog, logger)
	presensiHandler.Now = timezones.Clock(loc)
	r.Mount("/presensi", presensifeature.Routes(presensiHandler, sessionMgr))

	return r, nil
}

// plaintextCSRF tells gorilla/csrf the request arrived over plain HTTP so
// the origin check does not demand https in dev.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailed(logger *zap.Logger) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf check failed",
			zap.String("path", r.URL.Path),
			zap.Error(csrf.FailureReason(r)))
		errorsfeature.RenderError(w, r, http.StatusForbidden, "Akses ditolak",
			"Sesi formulir kedaluwarsa. Muat ulang halaman lalu coba lagi.", r.URL.Path)
	}
}
