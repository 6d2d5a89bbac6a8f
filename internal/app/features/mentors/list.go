// internal/app/features/mentors/list.go
package mentors

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders every mentor plus the create form.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list mentors")
	defer cancel()

	all, err := h.Mentors.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentors", err, "/")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Data Mentor", "/"),
		Items:  toItems(all),
	}
	data.Flashes = h.SessionMgr.Flashes(w, r)

	h.Log.Debug("serve mentors", zap.Int("count", len(all)))
	templates.Render(w, r, "mentors_list", data)
}
