package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/services"
)

// WebSocketHandler attaches an admin session to the broadcast hub
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		// Convert Gin's ResponseWriter to http.ResponseWriter
		services.HandleWebSocket(hub, c.Writer, c.Request, username)
	}
}
