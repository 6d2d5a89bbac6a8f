// internal/app/features/mentees/routes.go
package mentees

import (
	"github.com/dalemusser/presensihub/internal/app/system/auth"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the mentee pages (typically at "/mentees"). Admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		pr.Get("/{id}/delete", h.ServeDeleteConfirm)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
