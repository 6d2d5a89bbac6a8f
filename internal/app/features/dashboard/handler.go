// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/dalemusser/presensihub/internal/app/features/errors"
	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/gates"
	"github.com/dalemusser/presensihub/internal/app/system/stats"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

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

// ServeDashboard handles GET /dashboard and picks the view for the role.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireLogin(w, r)
	if !g.OK {
		return
	}
	role, mentorID := g.Role, g.MentorID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard load")
	defer cancel()

	snap, err := reportqueries.Load(ctx, h.Src)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "dashboard: load tables", err, "/")
		return
	}

	from, to := query.Get(r, "from"), query.Get(r, "to")
	scope := stats.Scope{Role: role}
	scope.From, scope.To = stats.ParseWindow(from, to)

	switch role {
	case models.RoleAdmin:
		vm := viewdata.NewBaseVM(r, "Dashboard Admin", "/")
		data := buildAdmin(snap, scope, query.Get(r, "search"))
		data.BaseVM = vm
		data.From, data.To = from, to
		h.Log.Debug("serve admin dashboard", zap.Int("records", data.TotalRecords))
		templates.Render(w, r, "dashboard_admin", data)

	case models.RoleMentor:
		scope.MentorID = mentorID
		vm := viewdata.NewBaseVM(r, "Dashboard Mentor", "/")
		data := buildMentor(snap, scope, query.Get(r, "mentee"))
		data.BaseVM = vm
		data.MentorID = mentorID
		data.From, data.To = from, to
		h.Log.Debug("serve mentor dashboard", zap.Int("mentor_id", mentorID), zap.Int("records", len(data.Rows)))
		templates.Render(w, r, "dashboard_mentor", data)

	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
