package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"net/http"

	"sellify-app/config"
	"sellify-app/database"
	"sellify-app/internal/domain/submissions"

	"github.com/gin-gonic/gin"
)

// MockPaymentComplete is POST /api/webhooks/mock-payment-complete, the
// non-Stripe testing path: it runs the same reconciler completion as a real
// checkout.session.completed. Disabled in production.
func MockPaymentComplete(c *gin.Context) {
	if config.APP_ENV == "production" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not available"})
		return
	}

	var body struct {
		SessionID     string                 `json:"sessionId"`
		FormData      map[string]interface{} `json:"formData"`
		CustomerEmail string                 `json:"customerEmail"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid sessionId"})
		return
	}

	pay, err := findPaymentBySession(body.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	if pay == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No payment for session"})
		return
	}

	// Optional overrides recorded on the submission before completing it.
	if pay.SubmissionID != nil && (body.CustomerEmail != "" || body.FormData != nil) {
		updates := map[string]interface{}{}
		if body.CustomerEmail != "" {
			updates["customer_email"] = body.CustomerEmail
		}
		if body.FormData != nil {
			raw, _ := json.Marshal(body.FormData)
			updates["form_data"] = string(raw)
		}
		if err := database.DB.Model(&submissions.Submission{}).
			Where("id = ?", *pay.SubmissionID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
			return
		}
	}

	mockIntent := fmt.Sprintf("pi_mock_%s", body.SessionID)
	if err := applyCompleted(pay, mockIntent, ""); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
