// internal/domain/models/mentor.go
package models

import "strings"

// Mentor is one row of the "mentor" worksheet.
type Mentor struct {
	ID    int
	Nama  string
	Email string
}

// Mentee is one row of the "mentee" worksheet. MentorID may point at a
// mentor that no longer exists; views show MissingMentorName for those.
type Mentee struct {
	ID       int
	Nama     string
	Kelompok string
	MentorID int
}

// MissingMentorName is displayed when a mentee's mentor_id is dangling.
const MissingMentorName = "Tidak Ditemukan"

// MentorNames maps mentor id to name. When an id repeats, the first row
// wins, the same row login picks for a repeated email.
func MentorNames(mentors []Mentor) map[int]string {
	out := make(map[int]string, len(mentors))
	for _, m := range mentors {
		if _, dup := out[m.ID]; !dup {
			out[m.ID] = m.Nama
		}
	}
	return out
}

// MentorName looks id up in names. Unknown ids and blank names both show
// as MissingMentorName.
func MentorName(names map[int]string, id int) string {
	if n, ok := names[id]; ok && strings.TrimSpace(n) != "" {
		return n
	}
	return MissingMentorName
}
