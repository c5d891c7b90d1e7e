package billing

import (
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/submissions"
	"sellify-app/internal/domain/users"
	"time"
)

// Payment is one Stripe checkout session for one page submission.
// StripeSessionID carries a unique index: the reconciler looks payments up
// strictly by stored Stripe identifiers, never by guessing.
type Payment struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"` // page owner (seller)
	User   users.User
	PageID uint `gorm:"index;not null"`
	Page   pages.CheckoutPage

	SubmissionID *uint
	Submission   *submissions.Submission

	StripeSessionID       string  `gorm:"uniqueIndex:idx_payments_stripe_session_id;not null"`
	StripePaymentIntentID *string `gorm:"index:idx_payments_stripe_payment_intent_id"`

	Amount   int64 // minor units
	Currency string `gorm:"type:varchar(3);not null"`

	Status Status `gorm:"type:varchar(20);not null;default:'pending'"`

	// LastError keeps the raw gateway failure message for the seller
	// dashboard. It is never returned on public endpoints.
	LastError  *string
	ReceiptURL *string

	WebhookProcessed   bool
	PaymentCompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
