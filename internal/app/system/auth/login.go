// internal/app/system/auth/login.go
package auth

import (
	"context"
	"fmt"
	"strings"

	mentorstore "github.com/dalemusser/presensihub/internal/app/store/mentors"
	"github.com/dalemusser/presensihub/internal/app/system/apperr"
	"github.com/dalemusser/presensihub/internal/domain/models"
	"go.uber.org/zap"
)

// Login failures. Each carries the message shown on the login form.
var (
	ErrEmailRequired      = apperr.Invalid("Email harus diisi.")
	ErrInvalidCredentials = apperr.WithMessage(apperr.ErrValidation, "Email Admin salah.")
	ErrMentorNotFound     = apperr.WithMessage(apperr.ErrNotFound, "Email Mentor tidak ditemukan.")
	ErrDataUnavailable    = apperr.WithMessage(apperr.ErrConnection, "Data mentor tidak dapat dimuat. Cek koneksi Google Sheets.")
)

// MentorLister is the slice of the mentor store the gate needs.
type MentorLister interface {
	List(ctx context.Context) ([]models.Mentor, error)
}

// Authenticator resolves an email + claimed role into a SessionUser.
// The email is the only credential.
type Authenticator struct {
	AdminEmail string
	Mentors    MentorLister
	Log        *zap.Logger
}

func NewAuthenticator(adminEmail string, mentors MentorLister, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		AdminEmail: strings.TrimSpace(adminEmail),
		Mentors:    mentors,
		Log:        logger,
	}
}

// Login checks the claim. It does not touch the session; the caller calls
// SessionManager.SignIn with the returned user.
func (a *Authenticator) Login(ctx context.Context, email, role string) (SessionUser, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return SessionUser{}, ErrEmailRequired
	}

	switch role {
	case models.RoleAdmin:
		if a.AdminEmail == "" || email != a.AdminEmail {
			return SessionUser{}, ErrInvalidCredentials
		}
		return SessionUser{Role: models.RoleAdmin, Name: "Admin", Email: email}, nil

	case models.RoleMentor:
		mentors, err := a.Mentors.List(ctx)
		if err != nil {
			a.Log.Error("login: load mentors", zap.Error(err))
			return SessionUser{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		matches := mentorstore.FindByEmail(mentors, email)
		if len(matches) == 0 {
			return SessionUser{}, ErrMentorNotFound
		}
		if len(matches) > 1 {
			a.Log.Warn("login: duplicate mentor email, using first row",
				zap.Int("matches", len(matches)),
				zap.Int("mentor_id", matches[0].ID))
		}
		m := matches[0]
		id := m.ID
		return SessionUser{Role: models.RoleMentor, Name: m.Nama, Email: email, MentorID: &id}, nil

	default:
		return SessionUser{}, ErrInvalidCredentials
	}
}
