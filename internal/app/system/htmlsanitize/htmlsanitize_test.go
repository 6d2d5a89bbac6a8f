package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/presensihub/internal/app/system/htmlsanitize"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Budi Santoso", "Budi Santoso"},
		{"trims", "  Kelompok A  ", "Kelompok A"},
		{"ampersand kept", "Tim A & B", "Tim A & B"},
		{"apostrophe kept", "Ma'ruf", "Ma'ruf"},
		{"tags stripped", "<b>Budi</b>", "Budi"},
		{"script removed", "Budi<script>alert('x')</script>", "Budi"},
		{"attributes removed", `<a href="javascript:alert(1)">Ani</a>`, "Ani"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
