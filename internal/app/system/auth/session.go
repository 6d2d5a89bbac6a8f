// internal/app/system/auth/session.go
package auth

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SignIn writes u into the session cookie. Any previous values are
// discarded and a fresh sid is issued. The returned user carries that sid.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) (*SessionUser, error) {
	sess, err := sm.session(r)
	if err != nil {
		return nil, err
	}

	for k := range sess.Values {
		delete(sess.Values, k)
	}
	u.SID = uuid.NewString()

	sess.Values[loggedInKey] = true
	sess.Values[roleKey] = u.Role
	sess.Values[userNameKey] = u.Name
	sess.Values[emailKey] = u.Email
	sess.Values[sidKey] = u.SID
	if u.MentorID != nil {
		sess.Values[mentorIDKey] = *u.MentorID
	}

	if err := sess.Save(r, w); err != nil {
		return nil, err
	}
	sm.logger.Info("signed in",
		zap.String("sid", u.SID),
		zap.String("role", u.Role),
		zap.Int("mentor_id", u.MentorIDValue()))
	return &u, nil
}

// SignOut expires the session cookie. Every key is gone afterwards.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// Decode failed. Still overwrite the cookie below.
		sm.logger.Warn("session decode failed during logout", zap.Error(err))
	}

	sid := getString(sess, sidKey)
	for k := range sess.Values {
		delete(sess.Values, k)
	}

	// The deletion cookie must match the store settings.
	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return err
	}
	sm.logger.Info("signed out", zap.String("sid", sid))
	return nil
}

// AddFlash queues a one-shot message shown on the next page render.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, err := sm.session(r)
	if err != nil {
		sm.logger.Warn("flash: load session", zap.Error(err))
		return
	}
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("flash: save session", zap.Error(err))
	}
}

// Flashes pops the queued messages. The session is saved only when there
// was something to pop, so plain page views don't rewrite the cookie.
func (sm *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, err := sm.session(r)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("flash: save session", zap.Error(err))
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
