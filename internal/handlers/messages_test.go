package handlers

import (
	"bytes"
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

func setupMessageRouter(handler *MessageHandler, identity auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { middleware.SetIdentity(c, identity) })
	r.POST("/api/messages", handler.Create)
	r.GET("/api/messages", handler.List)
	r.DELETE("/api/messages/:id", handler.Delete)
	r.PATCH("/api/messages/:id/read", handler.MarkRead)
	return r
}

func TestCreateMessageAnonymous(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewMessageHandler(messages, users)
	router := setupMessageRouter(handler, auth.Anonymous())

	users.On("GetUser", mock.Anything, 7).Return(models.User{ID: 7, Username: "bob"}, nil).Once()
	messages.On("CreateMessage", mock.Anything, 7, "hello there", (*string)(nil)).
		Return(models.Message{ID: 1, RecipientID: 7, Content: "hello there"}, nil).Once()

	body := bytes.NewBufferString(`{"recipient_id":7,"content":"hello there"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messages.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestCreateMessageRecipientMissing(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewMessageHandler(messages, users)
	router := setupMessageRouter(handler, auth.Anonymous())

	users.On("GetUser", mock.Anything, 99).Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"recipient_id":99,"content":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Recipient not found")
	messages.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListMessagesScopedToCaller(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewMessageHandler(messages, users)
	router := setupMessageRouter(handler, auth.ForUser(models.User{ID: 3, Username: "carol"}))

	messages.On("ListMessagesForRecipient", mock.Anything, 3).
		Return([]models.Message{{ID: 10, RecipientID: 3, Content: "psst"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "psst")
	messages.AssertExpectations(t)
}

func TestDeleteMessageNotOwned(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewMessageHandler(messages, users)
	router := setupMessageRouter(handler, auth.ForUser(models.User{ID: 3, Username: "carol"}))

	messages.On("DeleteMessage", mock.Anything, 10, 3).Return(repositories.ErrMessageNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message not found")
}

func TestMarkMessageRead(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewMessageHandler(messages, users)
	router := setupMessageRouter(handler, auth.ForUser(models.User{ID: 3, Username: "carol"}))

	messages.On("MarkMessageRead", mock.Anything, 10, 3).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/messages/10/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messages.AssertExpectations(t)
}

func TestMessageInvalidID(t *testing.T) {
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	handler := NewMessageHandler(messages, users)
	router := setupMessageRouter(handler, auth.ForUser(models.User{ID: 3, Username: "carol"}))

	req := httptest.NewRequest(http.MethodDelete, "/api/messages/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
