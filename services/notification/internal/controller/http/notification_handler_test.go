package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pool-fund/pkg/jwt"
	"pool-fund/pkg/logger"
	"pool-fund/pkg/queue"
	"pool-fund/services/notification/internal/entity"
	"pool-fund/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) HandleEvent(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func (m *MockNotificationUseCase) NotifyMilestone(ctx context.Context, msg queue.MilestoneReached) (int, error) {
	args := m.Called(msg)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationUseCase) NotifyBadge(ctx context.Context, msg queue.BadgeAwarded) (bool, error) {
	args := m.Called(msg)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationUseCase) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]entity.Notification, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationUseCase) IsPoolMuted(ctx context.Context, userID, poolID string) (bool, error) {
	args := m.Called(userID, poolID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationUseCase) SetPoolMuted(ctx context.Context, userID, poolID string, muted bool) error {
	args := m.Called(userID, poolID, muted)
	return args.Error(0)
}

func (m *MockNotificationUseCase) QueueLength() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

var _ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		next(c)
	}
}

func TestGetNotifications(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, jwt.NewService("test-secret"), logger.New())

	router := setupTestRouter()
	router.GET("/notifications", withUser("user-1", handler.GetNotifications))

	notifications := []entity.Notification{{ID: "badge:b-1", UserID: "user-1", Title: "New badge!", Type: entity.TypeBadgeAwarded}}
	mockUseCase.On("GetNotifications", "user-1", 50, 0).Return(notifications, int64(1), nil)
	mockUseCase.On("GetNotifications", "user-1", 10, 5).Return([]entity.Notification{}, int64(1), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=500", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, float64(1), body["total"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications?limit=10&offset=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_Error(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, jwt.NewService("test-secret"), logger.New())

	router := setupTestRouter()
	router.GET("/notifications", withUser("user-1", handler.GetNotifications))

	mockUseCase.On("GetNotifications", "user-1", 50, 0).Return(nil, int64(0), errors.New("redis down"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPoolNotificationSettings(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, jwt.NewService("test-secret"), logger.New())

	router := setupTestRouter()
	router.GET("/pools/:pool_id/notifications", withUser("user-1", handler.GetPoolSettings))
	router.POST("/pools/:pool_id/notifications", withUser("user-1", handler.EnablePoolNotifications))
	router.DELETE("/pools/:pool_id/notifications", withUser("user-1", handler.DisablePoolNotifications))

	mockUseCase.On("IsPoolMuted", "user-1", "pool-1").Return(true, nil)
	mockUseCase.On("SetPoolMuted", "user-1", "pool-1", false).Return(nil)
	mockUseCase.On("SetPoolMuted", "user-1", "pool-1", true).Return(nil)

	tests := []struct {
		method  string
		enabled bool
	}{
		{http.MethodGet, false},
		{http.MethodPost, true},
		{http.MethodDelete, false},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tt.method, "/pools/pool-1/notifications", nil))
		assert.Equal(t, http.StatusOK, w.Code, tt.method)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.enabled, body["enabled"], tt.method)
	}
	mockUseCase.AssertExpectations(t)
}

func TestPoolNotificationSettings_Error(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, jwt.NewService("test-secret"), logger.New())

	router := setupTestRouter()
	router.DELETE("/pools/:pool_id/notifications", withUser("user-1", handler.DisablePoolNotifications))

	mockUseCase.On("SetPoolMuted", "user-1", "pool-1", true).Return(errors.New("redis down"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/pools/pool-1/notifications", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetQueueStatus(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, jwt.NewService("test-secret"), logger.New())

	router := setupTestRouter()
	router.GET("/notifications/queue", handler.GetQueueStatus)

	mockUseCase.On("QueueLength").Return(4, nil).Once()
	mockUseCase.On("QueueLength").Return(0, usecase.ErrQueueUnavailable).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/queue", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"queue_length":4}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/queue", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleWebSocket_Rejections(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, jwt.NewService("test-secret"), logger.New())

	router := setupTestRouter()
	router.GET("/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications/ws?token=abc", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
