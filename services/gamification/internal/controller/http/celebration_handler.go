package http

import (
	"net/http"

	"pool-fund/pkg/jwt"
	"pool-fund/pkg/logger"
	"pool-fund/services/gamification/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type CelebrationHandler struct {
	broadcaster *realtime.RedisBroadcaster
	jwtService  *jwt.Service
	logger      *logger.Logger
}

func NewCelebrationHandler(broadcaster *realtime.RedisBroadcaster, jwtService *jwt.Service, logger *logger.Logger) *CelebrationHandler {
	return &CelebrationHandler{
		broadcaster: broadcaster,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// HandleWebSocket streams milestone celebrations for one pool. Browsers cannot
// set headers on a websocket upgrade, so the token comes as a query parameter.
func (h *CelebrationHandler) HandleWebSocket(c *gin.Context) {
	if h.broadcaster == nil {
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
	poolID := c.Param("pool_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("Celebration stream opened for user %s on pool %s", claims.UserID, poolID)

	ctx := c.Request.Context()
	pubsub := h.broadcaster.Subscribe(ctx, realtime.CelebrationChannel(poolID))
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
					h.logger.Warn("Failed to write celebration: %v", err)
					return
				}
			}
		}
	}()

	for {
		messageType, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if messageType == websocket.CloseMessage {
			break
		}
	}

	close(done)
	h.logger.Info("Celebration stream closed for user %s on pool %s", claims.UserID, poolID)
}
