package http

import (
	"errors"
	"net/http"
	"strconv"

	"pool-fund/pkg/jwt"
	"pool-fund/pkg/logger"
	"pool-fund/services/notification/internal/inbox"
	"pool-fund/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	inbox               *inbox.RedisInbox
	jwtService          *jwt.Service
	logger              *logger.Logger
}

// NewNotificationHandler wires the HTTP layer. redisInbox backs the websocket
// stream and may be nil when redis is unavailable.
func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, redisInbox *inbox.RedisInbox, jwtService *jwt.Service, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		inbox:               redisInbox,
		jwtService:          jwtService,
		logger:              logger,
	}
}

// GetNotifications godoc
// @Summary      Get notifications
// @Description  Latest milestone and badge notifications for the authenticated user, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Number of notifications to return (max 100)"
// @Param        offset  query  int  false  "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	notifications, total, err := h.notificationUseCase.GetNotifications(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"total":         total,
		"offset":        offset,
	})
}

// GetPoolSettings godoc
// @Summary      Get pool notification settings
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        pool_id  path  string  true  "Pool ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /pools/{pool_id}/notifications [get]
func (h *NotificationHandler) GetPoolSettings(c *gin.Context) {
	poolID := c.Param("pool_id")

	muted, err := h.notificationUseCase.IsPoolMuted(c.Request.Context(), c.GetString("user_id"), poolID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pool_id": poolID, "enabled": !muted})
}

// EnablePoolNotifications godoc
// @Summary      Enable pool notifications
// @Description  Resume milestone notifications for a pool
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        pool_id  path  string  true  "Pool ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /pools/{pool_id}/notifications [post]
func (h *NotificationHandler) EnablePoolNotifications(c *gin.Context) {
	h.setPoolMuted(c, false)
}

// DisablePoolNotifications godoc
// @Summary      Disable pool notifications
// @Description  Stop milestone notifications for a pool. Badge notifications are unaffected.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        pool_id  path  string  true  "Pool ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /pools/{pool_id}/notifications [delete]
func (h *NotificationHandler) DisablePoolNotifications(c *gin.Context) {
	h.setPoolMuted(c, true)
}

func (h *NotificationHandler) setPoolMuted(c *gin.Context, muted bool) {
	poolID := c.Param("pool_id")

	if err := h.notificationUseCase.SetPoolMuted(c.Request.Context(), c.GetString("user_id"), poolID, muted); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pool_id": poolID, "enabled": !muted})
}

// GetQueueStatus godoc
// @Summary      Notification queue status
// @Description  Number of milestone and badge events waiting to be turned into notifications (admin only)
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /notifications/queue [get]
func (h *NotificationHandler) GetQueueStatus(c *gin.Context) {
	length, err := h.notificationUseCase.QueueLength()
	if err != nil {
		if errors.Is(err, usecase.ErrQueueUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get queue length: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get queue length"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"queue_length": length})
}

// HandleWebSocket pushes new notifications to the user as they are delivered.
// The token is read from the query string because browsers cannot set headers
// on an upgrade request.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	if h.inbox == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Realtime updates unavailable"})
		return
	}

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %s", userID)

	pubsub := h.inbox.Subscribe(c.Request.Context(), userID)
	defer pubsub.Close()

	messages := pubsub.Channel()
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					h.logger.Error("Failed to write WebSocket message: %v", err)
					return
				}
			}
		}
	}()

	for {
		messageType, _, err := conn.ReadMessage()
		if err != nil {
			h.logger.Warn("WebSocket read error: %v", err)
			break
		}
		if messageType == websocket.CloseMessage {
			break
		}
	}

	close(done)
	h.logger.Info("WebSocket disconnected for user %s", userID)
}

func (h *NotificationHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrInvalidPool) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("Notification settings request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
}
