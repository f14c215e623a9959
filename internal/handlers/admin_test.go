package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whisper-service/internal/auth"
	"whisper-service/internal/middleware"
	"whisper-service/internal/mocks"
	"whisper-service/internal/models"
	"whisper-service/internal/repositories"
)

func setupAdminRouter(handler *AdminHandler, identity auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { middleware.SetIdentity(c, identity) })
	admin := r.Group("/api/admin", middleware.RequireAdmin())
	admin.GET("/stats", handler.GetStats)
	admin.GET("/users", handler.ListUsers)
	admin.DELETE("/users/:id", handler.DeleteUser)
	return r
}

func TestGetAdminStats(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	stats := new(mocks.StatsRepositoryMock)
	handler := NewAdminHandler(users, stats, nil)
	router := setupAdminRouter(handler, auth.SyntheticAdmin())

	stats.On("GetAdminStats", mock.Anything).
		Return(models.AdminStats{TotalUsers: 3, ActiveUsers: 3, TotalMessages: 17}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalMessages":17`)
	stats.AssertExpectations(t)
}

func TestListUsersAsAdmin(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	stats := new(mocks.StatsRepositoryMock)
	handler := NewAdminHandler(users, stats, nil)
	router := setupAdminRouter(handler, auth.SyntheticAdmin())

	users.On("ListUsers", mock.Anything).
		Return([]models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDeleteUserAsAdmin(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	stats := new(mocks.StatsRepositoryMock)
	handler := NewAdminHandler(users, stats, nil)
	router := setupAdminRouter(handler, auth.SyntheticAdmin())

	users.On("DeleteUser", mock.Anything, 2).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestDeleteUserNotFound(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	stats := new(mocks.StatsRepositoryMock)
	handler := NewAdminHandler(users, stats, nil)
	router := setupAdminRouter(handler, auth.SyntheticAdmin())

	users.On("DeleteUser", mock.Anything, 99).Return(repositories.ErrUserNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRejectRegularUser(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	stats := new(mocks.StatsRepositoryMock)
	handler := NewAdminHandler(users, stats, nil)
	router := setupAdminRouter(handler, auth.ForUser(models.User{ID: 1, Username: "alice"}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin access required")
	stats.AssertNotCalled(t, "GetAdminStats", mock.Anything)
}

func TestAdminRoutesRejectAnonymous(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	stats := new(mocks.StatsRepositoryMock)
	handler := NewAdminHandler(users, stats, nil)
	router := setupAdminRouter(handler, auth.Anonymous())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
