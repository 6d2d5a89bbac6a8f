// internal/app/features/statistik/templates.go
package statistik

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "statistik",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
