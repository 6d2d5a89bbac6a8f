// internal/app/features/mentors/new.go
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

// HandleCreate appends a mentor with the next free id.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/mentors")
		return
	}
	in := readForm(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create mentor")
	defer cancel()

	renderWithError := func(status int, msg string) {
		all, err := h.Mentors.List(ctx)
		if err != nil {
			h.ErrLog.LogStoreError(w, r, "list mentors", err, "/")
			return
		}
		data := listData{
			BaseVM: viewdata.NewBaseVM(r, "Data Mentor", "/"),
			Items:  toItems(all),
			Nama:   in.Nama,
			Email:  in.Email,
		}
		data.SetError(msg)
		w.WriteHeader(status)
		templates.Render(w, r, "mentors_list", data)
	}

	if msg := in.validate(); msg != "" {
		renderWithError(http.StatusBadRequest, msg)
		return
	}

	m, err := h.Mentors.Create(ctx, models.Mentor{Nama: in.Nama, Email: in.Email})
	if err != nil {
		if errors.Is(err, apperr.ErrConnection) {
			h.ErrLog.LogStoreError(w, r, "create mentor", err, "/mentors")
			return
		}
		renderWithError(h.ErrLog.LogFormError(r, "create mentor", err), apperr.Message(err))
		return
	}

	h.Log.Info("mentor created", zap.Int("mentor_id", m.ID))
	h.SessionMgr.AddFlash(w, r, fmt.Sprintf(msgCreatedFmt, m.Nama))
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MentorsBackURL), http.StatusSeeOther)
}
