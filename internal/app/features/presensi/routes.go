// internal/app/features/presensi/routes.go
package presensi

import (
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the attendance form. Mentors only; an admin has no group.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleMentor))

		pr.Get("/", h.ServeForm)
		pr.Post("/", h.HandleSubmit)
	})

	return r
}
