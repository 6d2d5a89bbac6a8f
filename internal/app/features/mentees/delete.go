// internal/app/features/mentees/delete.go
package mentees

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/navigation"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDeleteConfirm asks before removing a mentee.
//
// Route: GET /mentees/{id}/delete
func (h *Handler) ServeDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad mentee id", err, msgBadMenteeID, "/mentees")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load mentee")
	defer cancel()

	m, pos, err := h.locate(ctx, id)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "load mentee", err, "/mentees")
		return
	}
	mentors, err := h.Mentors.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentors", err, "/mentees")
		return
	}

	templates.Render(w, r, "mentee_delete", deleteData{
		BaseVM:   viewdata.NewBaseVM(r, "Hapus Mentee", "/mentees"),
		Position: pos,
		ID:       m.ID,
		Nama:     m.Nama,
		Kelompok: m.Kelompok,
		Mentor:   models.MentorName(models.MentorNames(mentors), m.MentorID),
	})
}

// HandleDelete removes the mentee row at the posted position. Attendance
// records of the mentee stay in the presensi worksheet.
//
// Route: POST /mentees/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad mentee id", err, msgBadMenteeID, "/mentees")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/mentees")
		return
	}
	pos, err := formPosition(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad position", err, msgBadPosition, "/mentees")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete mentee")
	defer cancel()

	if err := h.Mentees.DeleteAt(ctx, pos, id); err != nil {
		h.ErrLog.LogStoreError(w, r, "delete mentee", err, "/mentees")
		return
	}

	h.Log.Info("mentee deleted", zap.Int("mentee_id", id), zap.Int("position", pos))
	h.SessionMgr.AddFlash(w, r, msgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MenteesBackURL), http.StatusSeeOther)
}
