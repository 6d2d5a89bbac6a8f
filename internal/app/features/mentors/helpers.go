// internal/app/features/mentors/helpers.go
package mentors

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
	msgRequired    = "Nama dan Email tidak boleh kosong."
	msgDeleted     = "Mentor berhasil dihapus."
	msgCreatedFmt  = "Mentor '%s' berhasil ditambahkan."
	msgUpdatedFmt  = "Data mentor '%s' berhasil diperbarui."
	msgBadPosition = "Posisi baris tidak valid. Muat ulang halaman lalu coba lagi."
	msgBadMentorID = "ID mentor tidak valid."
)

// mentorInput defines validation rules for the create and edit forms.
type mentorInput struct {
	Nama  string `validate:"notblank,max=200" label:"Nama"`
	Email string `validate:"notblank,sheetemail,max=200" label:"Email"`
}

// readForm returns the sanitized nama and email from the posted form.
func readForm(r *http.Request) mentorInput {
	return mentorInput{
		Nama:  htmlsanitize.PlainText(r.FormValue("nama")),
		Email: strings.TrimSpace(r.FormValue("email")),
	}
}

// validate returns the message to show, or "" when in is acceptable.
// Missing fields share one message like the original form did.
func (in mentorInput) validate() string {
	res := inputval.Validate(in)
	if !res.HasErrors() {
		return ""
	}
	if res.HasTag("notblank", "required") {
		return msgRequired
	}
	return res.First()
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, apperr.Invalid(msgBadMentorID)
	}
	return id, nil
}

// formPosition parses the hidden position field.
func formPosition(r *http.Request) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(r.FormValue("pos")))
	if err != nil || pos < 0 {
		return 0, apperr.Invalid(msgBadPosition)
	}
	return pos, nil
}

// locate finds the first mentor carrying id and its current position.
func (h *Handler) locate(ctx context.Context, id int) (models.Mentor, int, error) {
	all, err := h.Mentors.List(ctx)
	if err != nil {
		return models.Mentor{}, 0, err
	}
	for pos, m := range all {
		if m.ID == id {
			return m, pos, nil
		}
	}
	return models.Mentor{}, 0, fmt.Errorf("mentor %d: %w", id, apperr.ErrNotFound)
}

func toItems(all []models.Mentor) []listItem {
	items := make([]listItem, 0, len(all))
	for pos, m := range all {
		items = append(items, listItem{Position: pos, ID: m.ID, Nama: m.Nama, Email: m.Email})
	}
	return items
}
