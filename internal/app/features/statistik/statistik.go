// internal/app/features/statistik/statistik.go
package statistik

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/store/queries/reportqueries"
	"github.com/dalemusser/presensihub/internal/app/system/gates"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeStatistik handles GET /statistik.
func (h *Handler) ServeStatistik(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireLogin(w, r)
	if !g.OK {
		return
	}
	role, mentorID := g.Role, g.MentorID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "statistik load")
	defer cancel()

	snap, err := reportqueries.Load(ctx, h.Src)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "statistik: load tables", err, "/")
		return
	}

	v := scopeFor(snap, role, mentorID, query.Get(r, "mentor"))
	data := build(snap, v)
	data.BaseVM = viewdata.NewBaseVM(r, "Statistik Presensi", "/")

	h.Log.Debug("serve statistik",
		zap.String("role", role),
		zap.Int("mentor_filter", v.filter),
		zap.Int("records", data.TotalRecords))
	templates.Render(w, r, "statistik", data)
}
