// Package apperr defines the error kinds shared by stores, the login gate and
// handlers. Callers wrap a kind with fmt.Errorf("...: %w", apperr.ErrX) and
// test for it with errors.Is.
package apperr

import (
	"errors"
)

var (
	// ErrConnection means the spreadsheet backend could not be reached, the
	// credentials were rejected, or the request timed out.
	ErrConnection = errors.New("spreadsheet unavailable")

	// ErrNotFound means a worksheet, record or login email does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means user input was rejected before any write.
	ErrValidation = errors.New("invalid input")

	// ErrPositionMismatch means the row at a position no longer carries the
	// id the caller expected (another writer shifted the table).
	ErrPositionMismatch = errors.New("row position changed")
)

// ValidationError carries a user-facing message and unwraps to ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid returns a *ValidationError with the given message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// UserError pairs an error kind with the exact text shown to the user.
type UserError struct {
	Kind error
	Msg  string
}

func (e *UserError) Error() string { return e.Msg }

func (e *UserError) Unwrap() error { return e.Kind }

// WithMessage returns a *UserError of the given kind.
func WithMessage(kind error, msg string) error {
	return &UserError{Kind: kind, Msg: msg}
}

// Message maps err to the Indonesian text shown to users.
func Message(err error) string {
	var (
		ve *ValidationError
		ue *UserError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Msg
	case errors.As(err, &ue):
		return ue.Msg
	case errors.Is(err, ErrPositionMismatch):
		return "Data telah berubah sejak halaman dimuat. Muat ulang halaman lalu coba lagi."
	case errors.Is(err, ErrNotFound):
		return "Data tidak ditemukan."
	case errors.Is(err, ErrConnection):
		return "Gagal terhubung ke Google Sheets. Coba beberapa saat lagi."
	default:
		return "Terjadi kesalahan pada server."
	}
}

// Kind returns a short label for logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrPositionMismatch):
		return "position_mismatch"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConnection):
		return "connection"
	default:
		return "internal"
	}
}
