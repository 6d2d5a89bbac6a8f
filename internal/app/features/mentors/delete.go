// internal/app/features/mentors/delete.go
package mentors

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/navigation"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDeleteConfirm asks before removing a mentor.
//
// Route: GET /mentors/{id}/delete
func (h *Handler) ServeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad mentor id", err, msgBadMentorID, "/mentors")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load mentor")
	defer cancel()

	m, pos, err := h.locate(ctx, id)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "load mentor", err, "/mentors")
		return
	}

	templates.Render(w, r, "mentor_delete", deleteData{
		BaseVM:   viewdata.NewBaseVM(r, "Hapus Mentor", "/mentors"),
		Position: pos,
		ID:       m.ID,
		Nama:     m.Nama,
		Email:    m.Email,
	})
}

// HandleDelete removes the mentor row at the posted position. Mentees
// assigned to it keep their mentor_id and show as unassigned.
//
// Route: POST /mentors/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad mentor id", err, msgBadMentorID, "/mentors")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/mentors")
		return
	}
	pos, err := formPosition(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad position", err, msgBadPosition, "/mentors")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete mentor")
	defer cancel()

	if err := h.Mentors.DeleteAt(ctx, pos, id); err != nil {
		h.ErrLog.LogStoreError(w, r, "delete mentor", err, "/mentors")
		return
	}

	h.Log.Info("mentor deleted", zap.Int("mentor_id", id), zap.Int("position", pos))
	h.SessionMgr.AddFlash(w, r, msgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MentorsBackURL), http.StatusSeeOther)
}
