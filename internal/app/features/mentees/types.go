// internal/app/features/mentees/types.go
package mentees

import (
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/presensihub/internal/domain/models"
)

// listItem is one mentee row with its worksheet position at render time.
type listItem struct {
	Position int
	ID       int
	Nama     string
	Kelompok string
	MentorID int
	Mentor   string
}

// menteeForm holds the editable fields and the mentor choices.
type menteeForm struct {
	Nama     string
	Kelompok string
	MentorID int

	Mentors   []models.Mentor
	NoMentors bool
}

type listData struct {
	viewdata.BaseVM
	menteeForm

	Items []listItem

	// MentorFilter narrows the table to one mentor; 0 shows everyone.
	MentorFilter int
}

type editData struct {
	viewdata.BaseVM
	menteeForm

	Position int
	ID       int
}

type deleteData struct {
	viewdata.BaseVM

	Position int
	ID       int
	Nama     string
	Kelompok string
	Mentor   string
}
