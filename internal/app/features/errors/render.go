// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/presensihub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderError writes status and renders the shared error page.
// If backURL is empty, the back link resolves from the request with "/" as
// the fallback.
func RenderError(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Status:  status,
		Message: msg,
	}

	// HTMX swaps would drop the page into a fragment target; send the
	// message as a plain body instead.
	if r.Header.Get("HX-Request") == "true" {
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
