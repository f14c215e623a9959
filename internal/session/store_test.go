package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-service/internal/auth"
	"whisper-service/internal/models"
)

func roundTrip(t *testing.T, store *Store, identity auth.Identity) auth.Identity {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, store.Save(w, r, identity))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	return store.Current(next)
}

func TestSaveAndCurrentUser(t *testing.T) {
	store := NewStore("test-secret", 24*time.Hour)

	identity := auth.ForUser(models.User{ID: 3, Username: "alice", Email: "alice@example.com", CreatedAt: time.Now()})
	got := roundTrip(t, store, identity)

	assert.Equal(t, auth.KindUser, got.Kind)
	assert.Equal(t, 3, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.False(t, got.IsAdmin)
}

func TestSaveAndCurrentAdmin(t *testing.T) {
	store := NewStore("test-secret", 24*time.Hour)

	got := roundTrip(t, store, auth.SyntheticAdmin())

	assert.Equal(t, auth.KindAdmin, got.Kind)
	assert.Equal(t, 0, got.ID)
	assert.Equal(t, "Administrator", got.Username)
	assert.True(t, got.IsAdmin)
}

func TestCurrentWithoutSessionIsAnonymous(t *testing.T) {
	store := NewStore("test-secret", 24*time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	got := store.Current(r)

	assert.Equal(t, auth.KindAnonymous, got.Kind)
	assert.False(t, got.Authenticated())
}

func TestClearDestroysSession(t *testing.T) {
	store := NewStore("test-secret", 24*time.Hour)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	require.NoError(t, store.Clear(w, r))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}
