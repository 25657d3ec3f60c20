package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ogarridot/transfersol-backend/internal/services"
)

// SubscribePush registers a device token for booking push notifications
func SubscribePush(push *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		id := push.Subscribe(input.Token)
		c.JSON(201, gin.H{"subscriptionId": id})
	}
}

// UnsubscribePush removes a push subscription
func UnsubscribePush(push *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SubscriptionID string `json:"subscriptionId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !push.Unsubscribe(input.SubscriptionID) {
			c.JSON(404, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(200, gin.H{"message": "Subscription removed"})
	}
}

// TestPush sends a test notification to every registered device
func TestPush(push *services.PushService) gin.HandlerFunc {
	return func(c *gin.Context) {
		push.Send(services.PushPayload{
			Title: "Test Notification",
			Body:  "Push notifications are working.",
		})
		c.JSON(200, gin.H{
			"message":       "Test notification sent",
			"subscriptions": push.SubscriptionCount(),
		})
	}
}
