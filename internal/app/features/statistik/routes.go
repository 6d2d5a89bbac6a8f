// internal/app/features/statistik/routes.go
package statistik

import (
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the statistik page and export. Any signed-in role.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeStatistik)
		pr.Get("/rekap.xlsx", h.ServeExport)
	})

	return r
}
