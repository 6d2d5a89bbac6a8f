package navigation_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/presensihub/internal/app/system/navigation"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		form   url.Values
		opts   navigation.BackURLOptions
		want   string
	}{
		{"valid return", "/mentors/3/edit?return=%2Fmentors%3Fq%3Dx", nil, navigation.MentorsBackURL, "/mentors?q=x"},
		{"foreign prefix", "/mentors/3/edit?return=%2Fdashboard", nil, navigation.MentorsBackURL, "/mentors"},
		{"excluded subpath", "/mentors/3/edit?return=%2Fmentors%2F3%2Fdelete", nil, navigation.MentorsBackURL, "/mentors"},
		{"open redirect", "/mentors/3/edit?return=https%3A%2F%2Fevil.example", nil, navigation.MentorsBackURL, "/mentors"},
		{"form value", "/mentees/2/edit", url.Values{"return": {"/mentees?mentor=4"}}, navigation.MenteesBackURL, "/mentees?mentor=4"},
		{"preserved filter", "/mentees/2/edit?mentor=4", nil, navigation.MenteesBackURL, "/mentees?mentor=4"},
		{"filter all", "/mentees/2/edit?mentor=all", nil, navigation.MenteesBackURL, "/mentees"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, body := "GET", ""
			if tt.form != nil {
				method, body = "POST", tt.form.Encode()
			}
			r := httptest.NewRequest(method, tt.target, strings.NewReader(body))
			if tt.form != nil {
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			if got := navigation.SafeBackURL(r, tt.opts); got != tt.want {
				t.Errorf("SafeBackURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
