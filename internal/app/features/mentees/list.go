// internal/app/features/mentees/list.go
package mentees

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders the mentees (optionally for one mentor) and the create
// form.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list mentees")
	defer cancel()

	all, err := h.Mentees.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentees", err, "/")
		return
	}
	mentors, err := h.Mentors.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentors", err, "/")
		return
	}

	filter, _ := strconv.Atoi(query.Get(r, "mentor"))

	data := listData{
		BaseVM:       viewdata.NewBaseVM(r, "Data Mentee", "/"),
		menteeForm:   menteeInput{}.form(mentors),
		Items:        toItems(all, mentors, filter),
		MentorFilter: filter,
	}
	data.Flashes = h.SessionMgr.Flashes(w, r)
	if data.NoMentors {
		data.SetError(msgNoMentors)
	}

	h.Log.Debug("serve mentees", zap.Int("count", len(data.Items)), zap.Int("mentor_filter", filter))
	templates.Render(w, r, "mentees_list", data)
}
