package handlers

import (
	"github.com/driveline/rental-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler handles WebSocket connections
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userRole := c.GetString("userRole")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userRole)
	}
}

// HubStatus reports how many dashboards are currently connected
func HubStatus(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"connectedClients": hub.GetConnectedClients()})
	}
}
