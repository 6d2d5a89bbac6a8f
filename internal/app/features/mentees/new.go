// internal/app/features/mentees/new.go
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

// HandleCreate appends a mentee assigned to the chosen mentor.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/mentees")
		return
	}
	in := readForm(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create mentee")
	defer cancel()

	mentors, err := h.Mentors.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentors", err, "/mentees")
		return
	}

	renderWithError := func(status int, msg string) {
		all, err := h.Mentees.List(ctx)
		if err != nil {
			h.ErrLog.LogStoreError(w, r, "list mentees", err, "/")
			return
		}
		data := listData{
			BaseVM:     viewdata.NewBaseVM(r, "Data Mentee", "/"),
			menteeForm: in.form(mentors),
			Items:      toItems(all, mentors, 0),
		}
		data.SetError(msg)
		w.WriteHeader(status)
		templates.Render(w, r, "mentees_list", data)
	}

	if len(mentors) == 0 {
		renderWithError(http.StatusBadRequest, msgNoMentors)
		return
	}
	if msg := in.validate(mentors); msg != "" {
		renderWithError(http.StatusBadRequest, msg)
		return
	}

	m, err := h.Mentees.Create(ctx, models.Mentee{Nama: in.Nama, Kelompok: in.Kelompok, MentorID: in.MentorID})
	if err != nil {
		if errors.Is(err, apperr.ErrConnection) {
			h.ErrLog.LogStoreError(w, r, "create mentee", err, "/mentees")
			return
		}
		renderWithError(h.ErrLog.LogFormError(r, "create mentee", err), apperr.Message(err))
		return
	}

	h.Log.Info("mentee created", zap.Int("mentee_id", m.ID), zap.Int("mentor_id", m.MentorID))
	h.SessionMgr.AddFlash(w, r, fmt.Sprintf(msgCreatedFmt, m.Nama))
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MenteesBackURL), http.StatusSeeOther)
}
