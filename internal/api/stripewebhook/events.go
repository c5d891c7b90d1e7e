package stripewebhooks

import (
	"net/http"
	"strconv"

	"sellify-app/database"
	"sellify-app/internal/domain/webhooks"

	"github.com/gin-gonic/gin"
)

// Read-only introspection over recorded webhook events (admin).

func ListWebhookEvents(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	q := database.DB.Model(&webhooks.WebhookEvent{}).Order("created_at DESC").Limit(limit)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if eventType := c.Query("type"); eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}

	var events []webhooks.WebhookEvent
	if err := q.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func GetWebhookEvent(c *gin.Context) {
	eventID := c.Param("eventId")

	var event webhooks.WebhookEvent
	if err := database.DB.Where("stripe_event_id = ?", eventID).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func WebhookEventStats(c *gin.Context) {
	type countRow struct {
		Key   string
		Count int64
	}

	var total int64
	database.DB.Model(&webhooks.WebhookEvent{}).Count(&total)

	var byStatus []countRow
	database.DB.Model(&webhooks.WebhookEvent{}).
		Select("status as key, COUNT(*) as count").
		Group("status").
		Scan(&byStatus)

	var byType []countRow
	database.DB.Model(&webhooks.WebhookEvent{}).
		Select("event_type as key, COUNT(*) as count").
		Group("event_type").
		Scan(&byType)

	statusMap := map[string]int64{}
	for _, row := range byStatus {
		statusMap[row.Key] = row.Count
	}
	typeMap := map[string]int64{}
	for _, row := range byType {
		typeMap[row.Key] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"by_status": statusMap,
		"by_type":   typeMap,
	})
}
