package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/presensihub/internal/app/system/apperr"
)

func TestInvalid_UnwrapsToValidation(t *testing.T) {
	err := fmt.Errorf("create mentor: %w", apperr.Invalid("Email harus diisi."))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("errors.Is(err, ErrValidation) = false")
	}
	if got := apperr.Message(err); got != "Email harus diisi." {
		t.Errorf("Message() = %q", got)
	}
}

func TestMessageAndKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"nil", nil, ""},
		{"connection", fmt.Errorf("read mentor: %w", apperr.ErrConnection), "connection"},
		{"not found", fmt.Errorf("table x: %w", apperr.ErrNotFound), "not_found"},
		{"mismatch", fmt.Errorf("update: %w", apperr.ErrPositionMismatch), "position_mismatch"},
		{"other", errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apperr.Kind(tt.err); got != tt.kind {
				t.Errorf("Kind() = %q, want %q", got, tt.kind)
			}
			msg := apperr.Message(tt.err)
			if tt.err == nil && msg != "" {
				t.Errorf("Message(nil) = %q, want empty", msg)
			}
			if tt.err != nil && msg == "" {
				t.Errorf("Message() empty for %v", tt.err)
			}
		})
	}
}

func TestWithMessage(t *testing.T) {
	err := fmt.Errorf("login: %w", apperr.WithMessage(apperr.ErrNotFound, "Email Mentor tidak ditemukan."))
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
	if got := apperr.Message(err); got != "Email Mentor tidak ditemukan." {
		t.Errorf("Message() = %q", got)
	}
	if got := apperr.Kind(err); got != "not_found" {
		t.Errorf("Kind() = %q", got)
	}
}
