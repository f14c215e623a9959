package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"whisper-service/internal/models"
	"whisper-service/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	args := m.Called(ctx, username, email, passwordHash)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, id int) (models.User, error) {
	args := m.Called(ctx, id)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) DeleteUser(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, recipientID int, content string, senderInfo *string) (models.Message, error) {
	args := m.Called(ctx, recipientID, content, senderInfo)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListMessagesForRecipient(ctx context.Context, recipientID int) ([]models.Message, error) {
	args := m.Called(ctx, recipientID)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) DeleteMessage(ctx context.Context, messageID, recipientID int) error {
	args := m.Called(ctx, messageID, recipientID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) MarkMessageRead(ctx context.Context, messageID, recipientID int) error {
	args := m.Called(ctx, messageID, recipientID)
	return args.Error(0)
}

type ChatMessageRepositoryMock struct {
	mock.Mock
}

func (m *ChatMessageRepositoryMock) CreateChatMessage(ctx context.Context, userID int, content string) (models.ChatMessage, error) {
	args := m.Called(ctx, userID, content)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

func (m *ChatMessageRepositoryMock) ListRecentChatMessages(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, limit)
	var msgs []models.ChatMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ChatMessage)
	}
	return msgs, args.Error(1)
}

type ReportRepositoryMock struct {
	mock.Mock
}

func (m *ReportRepositoryMock) CreateReport(ctx context.Context, reporterID, messageID, chatMessageID *int, reason string) (models.Report, error) {
	args := m.Called(ctx, reporterID, messageID, chatMessageID, reason)
	var report models.Report
	if val := args.Get(0); val != nil {
		report = val.(models.Report)
	}
	return report, args.Error(1)
}

func (m *ReportRepositoryMock) ListReportsWithDetails(ctx context.Context) ([]models.ReportDetails, error) {
	args := m.Called(ctx)
	var details []models.ReportDetails
	if val := args.Get(0); val != nil {
		details = val.([]models.ReportDetails)
	}
	return details, args.Error(1)
}

func (m *ReportRepositoryMock) UpdateReportStatus(ctx context.Context, reportID int, status string) error {
	args := m.Called(ctx, reportID, status)
	return args.Error(0)
}

type SettingsRepositoryMock struct {
	mock.Mock
}

func (m *SettingsRepositoryMock) GetSiteSettings(ctx context.Context) (models.SiteSettings, error) {
	args := m.Called(ctx)
	var settings models.SiteSettings
	if val := args.Get(0); val != nil {
		settings = val.(models.SiteSettings)
	}
	return settings, args.Error(1)
}

func (m *SettingsRepositoryMock) UpdateSiteSettings(ctx context.Context, siteName, footerText string, logoURL *string) (models.SiteSettings, error) {
	args := m.Called(ctx, siteName, footerText, logoURL)
	var settings models.SiteSettings
	if val := args.Get(0); val != nil {
		settings = val.(models.SiteSettings)
	}
	return settings, args.Error(1)
}

type StatsRepositoryMock struct {
	mock.Mock
}

func (m *StatsRepositoryMock) GetAdminStats(ctx context.Context) (models.AdminStats, error) {
	args := m.Called(ctx)
	var stats models.AdminStats
	if val := args.Get(0); val != nil {
		stats = val.(models.AdminStats)
	}
	return stats, args.Error(1)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.ChatMessageRepository = (*ChatMessageRepositoryMock)(nil)
var _ repositories.ReportRepository = (*ReportRepositoryMock)(nil)
var _ repositories.SettingsRepository = (*SettingsRepositoryMock)(nil)
var _ repositories.StatsRepository = (*StatsRepositoryMock)(nil)
