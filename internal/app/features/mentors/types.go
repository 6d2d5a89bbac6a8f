// internal/app/features/mentors/types.go
package mentors

import (
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
)

// listItem is one mentor row. Position is the row's index in the
// worksheet at the time the page was built; edit and delete forms send it
// back so the write lands on the row the admin saw.
type listItem struct {
	Position int
	ID       int
	Nama     string
	Email    string
}

type listData struct {
	viewdata.BaseVM

	Items []listItem

	// Create form, refilled after a failed submit.
	Nama  string
	Email string
}

type editData struct {
	viewdata.BaseVM

	Position int
	ID       int
	Nama     string
	Email    string
}

type deleteData struct {
	viewdata.BaseVM

	Position int
	ID       int
	Nama     string
	Email    string
}
