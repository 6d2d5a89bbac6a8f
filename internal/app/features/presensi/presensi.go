// internal/app/features/presensi/presensi.go
package presensi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	menteestore "github.com/dalemusser/presensihub/internal/app/store/mentees"
	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/app/system/gates"
	"github.com/dalemusser/presensihub/internal/app/system/timeouts"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeForm handles GET /presensi.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireMentor(w, r)
	if !g.OK {
		return
	}
	mentorID := g.MentorID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load group")
	defer cancel()

	all, err := h.Mentees.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentees", err, "/")
		return
	}
	mine := menteestore.ForMentor(all, mentorID)

	data := formData{
		BaseVM:    viewdata.NewBaseVM(r, "Presensi", "/"),
		MentorID:  mentorID,
		Pertemuan: 1,
		Tanggal:   h.Now().Format(models.DateLayout),
		Rows:      newRows(mine),
		Statuses:  models.Statuses,
		NoMentees: len(mine) == 0,
	}
	data.Flashes = h.SessionMgr.Flashes(w, r)
	if data.NoMentees {
		data.SetError(msgNoMentees)
	}

	h.Log.Debug("serve presensi form", zap.Int("mentor_id", mentorID), zap.Int("mentees", len(mine)))
	templates.Render(w, r, "presensi_form", data)
}

// HandleSubmit handles POST /presensi: one record per mentee of the
// caller's group, all with the same date and pertemuan.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireMentor(w, r)
	if !g.OK {
		return
	}
	mentorID := g.MentorID
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Data formulir tidak valid.", "/presensi")
		return
	}

	pertemuan, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("pertemuan")))
	in := meetingInput{
		Pertemuan: pertemuan,
		Tanggal:   strings.TrimSpace(r.FormValue("tanggal")),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "save presensi")
	defer cancel()

	all, err := h.Mentees.List(ctx)
	if err != nil {
		h.ErrLog.LogStoreError(w, r, "list mentees", err, "/presensi")
		return
	}
	mine := menteestore.ForMentor(all, mentorID)
	rows, statusMsg := readRows(r, mine)

	render := func(status int, msg string, failures []string) {
		data := formData{
			BaseVM:    viewdata.NewBaseVM(r, "Presensi", "/"),
			MentorID:  mentorID,
			Pertemuan: in.Pertemuan,
			Tanggal:   in.Tanggal,
			Rows:      rows,
			Statuses:  models.Statuses,
			Failures:  failures,
			NoMentees: len(mine) == 0,
		}
		data.SetError(msg)
		w.WriteHeader(status)
		templates.Render(w, r, "presensi_form", data)
	}

	if len(mine) == 0 {
		render(http.StatusBadRequest, msgNoMentees, nil)
		return
	}
	if msg := in.validate(); msg != "" {
		render(http.StatusBadRequest, msg, nil)
		return
	}
	if statusMsg != "" {
		render(http.StatusBadRequest, statusMsg, nil)
		return
	}

	saved, err := h.Presensi.CreateBatch(ctx, batch(in, rows))
	if err != nil {
		status := h.ErrLog.LogFormError(r, "save presensi", err)
		reason := apperr.Message(err)
		// Rows that did land keep their ids; only the rest need re-entry.
		var failures []string
		for _, a := range saved {
			if a.ID == 0 {
				failures = append(failures, fmt.Sprintf(msgFailedFmt, a.MenteeID, reason))
			}
		}
		render(status, "", failures)
		return
	}

	h.Log.Info("presensi saved",
		zap.Int("mentor_id", mentorID),
		zap.Int("pertemuan", in.Pertemuan),
		zap.String("tanggal", in.Tanggal),
		zap.Int("records", len(saved)))
	h.SessionMgr.AddFlash(w, r, msgSaved)
	http.Redirect(w, r, "/presensi", http.StatusSeeOther)
}
