// internal/app/features/mentors/edit.go
package mentors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/app/system/navigation"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeEdit renders the edit form for the first mentor carrying {id}.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
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

	templates.Render(w, r, "mentor_edit", editData{
		BaseVM:   viewdata.NewBaseVM(r, "Edit Mentor", "/mentors"),
		Position: pos,
		ID:       m.ID,
		Nama:     m.Nama,
		Email:    m.Email,
	})
}

// HandleEdit rewrites the mentor at the posted position. The write is
// refused when that row no longer carries {id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
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
	in := readForm(r)

	renderWithError := func(status int, msg string) {
		data := editData{
			BaseVM:   viewdata.NewBaseVM(r, "Edit Mentor", "/mentors"),
			Position: pos,
			ID:       id,
			Nama:     in.Nama,
			Email:    in.Email,
		}
		data.SetError(msg)
		w.WriteHeader(status)
		templates.Render(w, r, "mentor_edit", data)
	}

	if msg := in.validate(); msg != "" {
		renderWithError(http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update mentor")
	defer cancel()

	err = h.Mentors.UpdateAt(ctx, pos, models.Mentor{ID: id, Nama: in.Nama, Email: in.Email})
	if err != nil {
		if errors.Is(err, apperr.ErrConnection) {
			h.ErrLog.LogStoreError(w, r, "update mentor", err, "/mentors")
			return
		}
		renderWithError(h.ErrLog.LogFormError(r, "update mentor", err), apperr.Message(err))
		return
	}

	h.Log.Info("mentor updated", zap.Int("mentor_id", id), zap.Int("position", pos))
	h.SessionMgr.AddFlash(w, r, fmt.Sprintf(msgUpdatedFmt, in.Nama))
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MentorsBackURL), http.StatusSeeOther)
}
