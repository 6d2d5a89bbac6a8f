// internal/app/features/mentees/edit.go
package mentees

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

// ServeEdit renders the edit form for the first mentee carrying {id}.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
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

	data := editData{
		BaseVM:     viewdata.NewBaseVM(r, "Edit Mentee", "/mentees"),
		menteeForm: menteeInput{Nama: m.Nama, Kelompok: m.Kelompok, MentorID: m.MentorID}.form(mentors),
		Position:   pos,
		ID:         m.ID,
	}
	if data.NoMentors {
		data.SetError(msgNoMentors)
	}
	templates.Render(w, r, "mentee_edit", data)
}

// HandleEdit rewrites the mentee at the posted position if it still
// carries {id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
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
	in := readForm(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update mentee")
	defer cancel()

	mentors, err := h.Mentors.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentors", err, "/mentees")
		return
	}

	renderWithError := func(status int, msg string) {
		data := editData{
			BaseVM:     viewdata.NewBaseVM(r, "Edit Mentee", "/mentees"),
			menteeForm: in.form(mentors),
			Position:   pos,
			ID:         id,
		}
		data.SetError(msg)
		w.WriteHeader(status)
		templates.Render(w, r, "mentee_edit", data)
	}

	if msg := in.validate(mentors); msg != "" {
		renderWithError(http.StatusBadRequest, msg)
		return
	}

	err = h.Mentees.UpdateAt(ctx, pos, models.Mentee{ID: id, Nama: in.Nama, Kelompok: in.Kelompok, MentorID: in.MentorID})
	if err != nil {
		if errors.Is(err, apperr.ErrConnection) {
			h.ErrLog.LogStoreError(w, r, "update mentee", err, "/mentees")
			return
		}
		renderWithError(h.ErrLog.LogFormError(r, "update mentee", err), apperr.Message(err))
		return
	}

	h.Log.Info("mentee updated", zap.Int("mentee_id", id), zap.Int("position", pos))
	h.SessionMgr.AddFlash(w, r, fmt.Sprintf(msgUpdatedFmt, in.Nama))
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MenteesBackURL), http.StatusSeeOther)
}
