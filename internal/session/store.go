// Package session persists the caller identity in a cookie-backed session.
package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"whisper-service/internal/auth"
)

const sessionName = "whisper_session"

// Store wraps a cookie store. The cookie itself enforces the session TTL; no
// server-side state survives a restart.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore builds a cookie store with the given signing secret and TTL.
func NewStore(secret string, ttl time.Duration) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(ttl.Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Current resolves the identity bound to the request's session. An absent,
// expired, or malformed session yields the anonymous identity.
func (s *Store) Current(r *http.Request) auth.Identity {
	sess, err := s.cookies.Get(r, sessionName)
	if err != nil || sess.IsNew {
		return auth.Anonymous()
	}

	kind, ok := sess.Values["kind"].(int)
	if !ok || auth.Kind(kind) == auth.KindAnonymous {
		return auth.Anonymous()
	}

	identity := auth.Identity{Kind: auth.Kind(kind)}
	identity.ID, _ = sess.Values["user_id"].(int)
	identity.Username, _ = sess.Values["username"].(string)
	identity.Email, _ = sess.Values["email"].(string)
	identity.IsAdmin, _ = sess.Values["is_admin"].(bool)
	if unix, ok := sess.Values["created_at"].(int64); ok {
		identity.CreatedAt = time.Unix(unix, 0)
	}
	return identity
}

// Save binds the identity to the session cookie.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, identity auth.Identity) error {
	sess, _ := s.cookies.Get(r, sessionName)
	sess.Values["kind"] = int(identity.Kind)
	sess.Values["user_id"] = identity.ID
	sess.Values["username"] = identity.Username
	sess.Values["email"] = identity.Email
	sess.Values["is_admin"] = identity.IsAdmin
	sess.Values["created_at"] = identity.CreatedAt.Unix()
	return sess.Save(r, w)
}

// Clear destroys the session. Clearing an absent session is a no-op.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, sessionName)
	sess.Options.MaxAge = -1
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(r, w)
}
