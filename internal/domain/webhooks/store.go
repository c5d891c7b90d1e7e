package webhooks

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Deliveries that failed this many times stay "failed" instead of
// "retrying"; Stripe gives up on its own schedule either way.
const maxAttempts = 5

// RecordIfNew inserts the event if its Stripe id was never seen, relying on
// the unique index to resolve concurrent redeliveries. New rows land as
// "received"; reopened redeliveries of failed/retrying rows move to
// "processing". The returned bool tells the caller whether to dispatch:
// true for brand-new events and for earlier failed/retrying deliveries
// (Stripe's redelivery completes the work), false for a dedup hit.
func RecordIfNew(db *gorm.DB, stripeEventID, eventType string, payload []byte) (*WebhookEvent, bool, error) {
	ev := WebhookEvent{
		StripeEventID: stripeEventID,
		EventType:     eventType,
		Payload:       string(payload),
		Status:        EventReceived,
		Attempts:      1,
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_event_id"}},
		DoNothing: true,
	}).Create(&ev)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to record webhook event: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return &ev, true, nil
	}

	// Conflict: the id exists already.
	var existing WebhookEvent
	if err := db.Where("stripe_event_id = ?", stripeEventID).First(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load existing webhook event: %w", err)
	}

	if existing.Status == EventFailed || existing.Status == EventRetrying {
		if err := db.Model(&WebhookEvent{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"status":   EventProcessing,
				"attempts": gorm.Expr("attempts + 1"),
			}).Error; err != nil {
			return nil, false, fmt.Errorf("failed to reopen webhook event: %w", err)
		}
		existing.Status = EventProcessing
		existing.Attempts++
		return &existing, true, nil
	}

	return &existing, false, nil
}

// MarkCompleted finalizes a processed event.
func (e *WebhookEvent) MarkCompleted(db *gorm.DB) error {
	now := time.Now()
	err := db.Model(&WebhookEvent{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"status":       EventCompleted,
			"processed_at": now,
			"last_error":   nil,
		}).Error
	if err != nil {
		return err
	}
	e.Status = EventCompleted
	e.ProcessedAt = &now
	return nil
}

// MarkFailed records a processing failure. The event goes to "retrying"
// while under the attempt cap so a redelivered Stripe event reprocesses it.
func (e *WebhookEvent) MarkFailed(db *gorm.DB, cause error) error {
	status := EventRetrying
	if e.Attempts >= maxAttempts {
		status = EventFailed
	}
	msg := cause.Error()
	err := db.Model(&WebhookEvent{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"status":     status,
			"last_error": msg,
		}).Error
	if err != nil {
		return err
	}
	e.Status = status
	e.LastError = &msg
	return nil
}
