package stripewebhooks

import (
	"io"
	"log"
	"net/http"

	"sellify-app/config"
	"sellify-app/database"
	"sellify-app/internal/domain/webhooks"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75/webhook"
)

const maxWebhookBody = 1 << 20 // Stripe payloads are small; cap the body

// StripeWebhook is POST /api/webhooks/stripe.
//
// Order matters: verify the signature first (400, nothing persisted on
// mismatch), then record the event id (dedup hit -> 200, no side effects),
// then dispatch. A handler failure marks the event failed/retrying and
// returns 500 so Stripe's redelivery completes the work.
func StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, maxWebhookBody)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("❌ Stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	rec, process, err := webhooks.RecordIfNew(database.DB, event.ID, string(event.Type), payload)
	if err != nil {
		log.Println("❌ Failed to record webhook event:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}
	if !process {
		// Already handled (or in flight); acknowledge so Stripe stops retrying.
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	handler, known := eventHandlers[string(event.Type)]
	if !known {
		// Recorded for audit, no side effects, forward-compatible.
		if err := rec.MarkCompleted(database.DB); err != nil {
			log.Println("failed to finalize ignored event:", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := handler(&event); err != nil {
		log.Printf("❌ Webhook %s (%s) failed: %v", event.ID, event.Type, err)
		if markErr := rec.MarkFailed(database.DB, err); markErr != nil {
			log.Println("failed to mark event failed:", markErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Event processing failed"})
		return
	}

	if err := rec.MarkCompleted(database.DB); err != nil {
		log.Println("failed to finalize event:", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
