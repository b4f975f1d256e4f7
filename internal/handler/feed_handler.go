package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"flexio/config"
	"flexio/internal/auth"
	"flexio/internal/repository"
	"flexio/internal/ws"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the live gym activity feed. Browsers cannot set headers
// on a WebSocket handshake, so the token may also come as ?token=.
type FeedHandler struct {
	hub    *ws.Hub
	jwt    *config.JWTConfig
	access gymAccess
}

func NewFeedHandler(hub *ws.Hub, jwt *config.JWTConfig, gyms *repository.GymRepository, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{hub: hub, jwt: jwt, access: gymAccess{gyms: gyms, logger: logger}}
}

func (h *FeedHandler) Feed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	claims, err := auth.ParseAccessToken(h.jwt, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	h.hub.Serve(c.Writer, c.Request, claims.UserID, gym.ID)
}
