// internal/domain/models/attendance.go
package models

import "time"

// Attendance statuses. Only StatusHadir counts as present.
const (
	StatusHadir = "Hadir"
	StatusSakit = "Sakit"
	StatusIzin  = "Izin"
	StatusAlfa  = "Alfa"
)

// Statuses lists the closed status set in display order.
var Statuses = []string{StatusHadir, StatusSakit, StatusIzin, StatusAlfa}

// DateLayout is the on-sheet format of Attendance.Tanggal.
const DateLayout = "2006-01-02"

// Attendance is one row of the "presensi" worksheet.
type Attendance struct {
	ID        int
	MenteeID  int
	Tanggal   string // YYYY-MM-DD as stored
	Pertemuan int
	Status    string
}

// Date parses Tanggal. ok is false when the cell is empty or malformed.
func (a Attendance) Date() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, a.Tanggal)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Hadir reports whether the record counts toward attendance.
func (a Attendance) Hadir() bool {
	return a.Status == StatusHadir
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
