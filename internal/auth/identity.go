// Package auth models the caller identity and password credentials.
package auth

import (
	"time"

	"whisper-service/internal/models"
)

// Kind is the capability tier bound to a session.
type Kind int

const (
	KindAnonymous Kind = iota
	KindUser
	KindAdmin
)

// Identity is the resolved caller identity for one request or channel. It is
// a tagged value: an anonymous caller, a registered user, or the synthetic
// administrator that has no backing user row.
type Identity struct {
	Kind      Kind      `json:"-"`
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Anonymous is the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{Kind: KindAnonymous}
}

// ForUser builds the identity bound to a registered user.
func ForUser(u models.User) Identity {
	return Identity{
		Kind:      KindUser,
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// SyntheticAdmin is the administrator identity produced by the static
// credential pair. It is not backed by a user row.
func SyntheticAdmin() Identity {
	return Identity{
		Kind:      KindAdmin,
		ID:        0,
		Username:  "Administrator",
		Email:     "admin@edwardsanonymous.com",
		IsAdmin:   true,
		CreatedAt: time.Now(),
	}
}

// Authenticated reports whether the identity carries a session.
func (id Identity) Authenticated() bool {
	return id.Kind != KindAnonymous
}
