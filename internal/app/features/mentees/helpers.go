// internal/app/features/mentees/helpers.go
package mentees

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/presensihub/internal/app/system/inputval"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgRequired      = "Nama, Kelompok, dan Mentor tidak boleh kosong."
	msgNoMentors     = "Tidak ada data mentor. Harap tambahkan mentor terlebih dahulu di halaman Data Mentor."
	msgDeleted       = "Mentee berhasil dihapus."
	msgCreatedFmt    = "Mentee '%s' berhasil ditambahkan."
	msgUpdatedFmt    = "Data mentee '%s' berhasil diperbarui."
	msgBadPosition   = "Posisi baris tidak valid. Muat ulang halaman lalu coba lagi."
	msgBadMenteeID   = "ID mentee tidak valid."
	msgUnknownMentor = "Mentor yang dipilih tidak ditemukan."
)

// menteeInput defines validation rules for the create and edit forms.
// MentorID 0 means nothing was picked.
type menteeInput struct {
	Nama     string `validate:"notblank,max=200" label:"Nama"`
	Kelompok string `validate:"notblank,max=100" label:"Kelompok"`
	MentorID int    `validate:"required,gt=0" label:"Mentor"`
}

func readForm(r *http.Request) menteeInput {
	mid, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("mentor_id")))
	return menteeInput{
		Nama:     htmlsanitize.PlainText(r.FormValue("nama")),
		Kelompok: htmlsanitize.PlainText(r.FormValue("kelompok")),
		MentorID: mid,
	}
}

// validate checks the fields and that the chosen mentor exists.
func (in menteeInput) validate(mentors []models.Mentor) string {
	res := inputval.Validate(in)
	if res.HasTag("notblank", "required", "gt") {
		return msgRequired
	}
	if res.HasErrors() {
		return res.First()
	}
	if _, ok := models.MentorNames(mentors)[in.MentorID]; !ok {
		return msgUnknownMentor
	}
	return ""
}

func (in menteeInput) form(mentors []models.Mentor) menteeForm {
	return menteeForm{
		Nama:      in.Nama,
		Kelompok:  in.Kelompok,
		MentorID:  in.MentorID,
		Mentors:   mentors,
		NoMentors: len(mentors) == 0,
	}
}

func urlID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, apperr.Invalid(msgBadMenteeID)
	}
	return id, nil
}

func formPosition(r *http.Request) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(r.FormValue("pos")))
	if err != nil || pos < 0 {
		return 0, apperr.Invalid(msgBadPosition)
	}
	return pos, nil
}

// locate finds the first mentee carrying id and its current position.
func (h *Handler) locate(ctx context.Context, id int) (models.Mentee, int, error) {
	all, err := h.Mentees.List(ctx)
	if err != nil {
		return models.Mentee{}, 0, err
	}
	for pos, m := range all {
		if m.ID == id {
			return m, pos, nil
		}
	}
	return models.Mentee{}, 0, fmt.Errorf("mentee %d: %w", id, apperr.ErrNotFound)
}

// toItems joins mentees with mentor names. filter 0 keeps all rows;
// positions always refer to the unfiltered worksheet.
func toItems(all []models.Mentee, mentors []models.Mentor, filter int) []listItem {
	names := models.MentorNames(mentors)
	items := make([]listItem, 0, len(all))
	for pos, m := range all {
		if filter != 0 && m.MentorID != filter {
			continue
		}
		items = append(items, listItem{
			Position: pos,
			ID:       m.ID,
			Nama:     m.Nama,
			Kelompok: m.Kelompok,
			MentorID: m.MentorID,
			Mentor:   models.MentorName(names, m.MentorID),
		})
	}
	return items
}
