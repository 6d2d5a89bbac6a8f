// internal/app/features/presensi/form.go
package presensi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/presensihub/internal/app/system/inputval"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

const (
	msgNoMentees = "Belum ada mentee dalam kelompok Anda."
	msgSaved     = "Presensi berhasil disimpan."
	msgFailedFmt = "Gagal menyimpan presensi mentee ID %d: %s"
	msgBadStatus = "Status kehadiran %s tidak valid."
)

// row is one mentee line of the form.
type row struct {
	MenteeID int
	Nama     string
	Kelompok string
	Status   string
}

type formData struct {
	viewdata.BaseVM

	MentorID  int
	Pertemuan int
	Tanggal   string
	Rows      []row
	Statuses  []string
	Failures  []string
	NoMentees bool
}

// meetingInput defines validation rules shared by every row.
type meetingInput struct {
	Pertemuan int    `validate:"gte=1" label:"Pertemuan"`
	Tanggal   string `validate:"notblank,datetime=2006-01-02" label:"Tanggal"`
}

func statusField(menteeID int) string {
	return "status_" + strconv.Itoa(menteeID)
}

// newRows lists the mentees with Hadir preselected.
func newRows(mentees []models.Mentee) []row {
	rows := make([]row, 0, len(mentees))
	for _, m := range mentees {
		rows = append(rows, row{MenteeID: m.ID, Nama: m.Nama, Kelompok: m.Kelompok, Status: models.StatusHadir})
	}
	return rows
}

// readRows takes each mentee's status from the posted form. Only the
// caller's mentees are read, so a forged field for another group is
// ignored. The returned message is "" when every status is known.
func readRows(r *http.Request, mentees []models.Mentee) ([]row, string) {
	rows := newRows(mentees)
	msg := ""
	for i := range rows {
		s := strings.TrimSpace(r.FormValue(statusField(rows[i].MenteeID)))
		if s == "" {
			continue
		}
		rows[i].Status = s
		if !models.ValidStatus(s) && msg == "" {
			msg = fmt.Sprintf(msgBadStatus, rows[i].Nama)
		}
	}
	return rows, msg
}

func (in meetingInput) validate() string {
	res := inputval.Validate(in)
	if !res.HasErrors() {
		return ""
	}
	return res.First()
}

func batch(in meetingInput, rows []row) []models.Attendance {
	out := make([]models.Attendance, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Attendance{
			MenteeID:  r.MenteeID,
			Tanggal:   in.Tanggal,
			Pertemuan: in.Pertemuan,
			Status:    r.Status,
		})
	}
	return out
}
