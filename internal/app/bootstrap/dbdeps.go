// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	menteestore "github.com/dalemusser/presensihub/internal/app/store/mentees"
	mentorstore "github.com/dalemusser/presensihub/internal/app/store/mentors"
	presensistore "github.com/dalemusser/presensihub/internal/app/store/presensi"
	"github.com/dalemusser/presensihub/internal/app/store/sheet"
)

// DBDeps holds the opened workbook and the record stores built on it.
// Each store is created once so its write lock covers the whole process.
type DBDeps struct {
	Workbook *sheet.CachedWorkbook
	Backend  string

	Mentors  *mentorstore.Store
	Mentees  *menteestore.Store
	Presensi *presensistore.Store
}
