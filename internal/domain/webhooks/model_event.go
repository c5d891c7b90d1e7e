package webhooks

import "time"

type EventStatus string

const (
	EventReceived   EventStatus = "received"
	EventProcessing EventStatus = "processing"
	EventCompleted  EventStatus = "completed"
	EventFailed     EventStatus = "failed"
	EventRetrying   EventStatus = "retrying"
)

// WebhookEvent is one received Stripe event. The unique index on
// StripeEventID is the idempotency key: concurrent redeliveries of the same
// event resolve at the database, not in process.
type WebhookEvent struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	StripeEventID string `gorm:"uniqueIndex:idx_webhook_events_stripe_event_id;not null" json:"stripe_event_id"`
	EventType     string `gorm:"index" json:"event_type"`

	// Payload keeps the raw signed body for audit.
	Payload string `gorm:"type:text" json:"-"`

	Status    EventStatus `gorm:"type:varchar(20);not null;default:'received'" json:"status"`
	Attempts  int         `json:"attempts"`
	LastError *string     `json:"last_error,omitempty"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
