// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

type homeData struct {
	viewdata.BaseVM
	Links []homeLink
}

type homeLink struct {
	Href  string
	Label string
	Desc  string
}

// linksFor lists the pages a role can open from the landing page.
func linksFor(vm viewdata.BaseVM) []homeLink {
	switch {
	case vm.IsAdmin():
		return []homeLink{
			{"/dashboard", "Dashboard", "Ringkasan kehadiran seluruh mentee."},
			{"/mentors", "Data Mentor", "Tambah, ubah, dan hapus mentor."},
			{"/mentees", "Data Mentee", "Tambah, ubah, dan hapus mentee."},
			{"/statistik", "Statistik", "Rekap per pertemuan dan per mentee."},
		}
	case vm.IsMentor():
		return []homeLink{
			{"/dashboard", "Dashboard", "Ringkasan kehadiran kelompok Anda."},
			{"/presensi", "Presensi", "Catat kehadiran mentee per pertemuan."},
			{"/statistik", "Statistik", "Rekap kehadiran kelompok Anda."},
		}
	default:
		return []homeLink{
			{"/login", "Masuk", "Masuk sebagai Admin atau Mentor."},
		}
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.NewBaseVM(r, "Beranda", "/")
	if h.SessionMgr != nil {
		vm.Flashes = h.SessionMgr.Flashes(w, r)
	}
	data := homeData{BaseVM: vm, Links: linksFor(vm)}

	templates.Render(w, r, "home", data)
}
