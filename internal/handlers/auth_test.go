package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whisper-service/internal/auth"
	"whisper-service/internal/middleware"
	"whisper-service/internal/mocks"
	"whisper-service/internal/models"
	"whisper-service/internal/repositories"
	"whisper-service/internal/session"
)

var testAdminCreds = AdminCredentials{Username: "Adegboyega", Password: "ibukun"}

func setupAuthRouter(handler *AuthHandler, store *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ResolveIdentity(store))
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", handler.Me)
	return r
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp, "user")
	return resp["user"]
}

func TestRegisterSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	users.On("GetUserByUsername", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("CreateUser", mock.Anything, "alice", "alice@example.com", mock.Anything).
		Return(models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: "hash"}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeUser(t, rec)
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")
	assert.NotEmpty(t, rec.Result().Cookies())
	users.AssertExpectations(t)
}

func TestRegisterUsernameConflict(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	users.On("GetUserByUsername", mock.Anything, "alice").Return(models.User{ID: 1, Username: "alice"}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","email":"other@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username already exists")
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterEmailConflict(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	users.On("GetUserByUsername", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("GetUserByEmail", mock.Anything, "taken@example.com").Return(models.User{ID: 2}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","email":"taken@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminLoginShortCircuitsUserLookup(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	body := bytes.NewBufferString(`{"username":"Adegboyega","password":"ibukun"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeUser(t, rec)
	assert.Equal(t, "Administrator", user["username"])
	assert.Equal(t, float64(0), user["id"])
	assert.Equal(t, true, user["is_admin"])
	users.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	users.On("GetUserByUsername", mock.Anything, "ghost").Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"username":"ghost","password":"whatever"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("right")
	require.NoError(t, err)

	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	users.On("GetUserByUsername", mock.Anything, "alice").
		Return(models.User{ID: 1, Username: "alice", Password: hash}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginThenMeThenLogout(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)

	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	users.On("GetUserByUsername", mock.Anything, "alice").
		Return(models.User{ID: 1, Username: "alice", Email: "alice@example.com", Password: hash}, nil).Once()

	body := bytes.NewBufferString(`{"username":"alice","password":"secret"}`)
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	meReq := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		meReq.AddCookie(c)
	}
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, meReq)
	require.Equal(t, http.StatusOK, meRec.Code)
	assert.Equal(t, "alice", decodeUser(t, meRec)["username"])

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	for _, c := range cookies {
		logoutReq.AddCookie(c)
	}
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logoutReq)
	require.Equal(t, http.StatusOK, logoutRec.Code)
	expired := logoutRec.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Negative(t, expired[0].MaxAge)
}

func TestMeUnauthenticated(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	store := session.NewStore("test-secret", 24*time.Hour)
	handler := NewAuthHandler(users, store, testAdminCreds, nil)
	router := setupAuthRouter(handler, store)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")
}
