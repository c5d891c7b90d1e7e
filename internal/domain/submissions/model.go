package submissions

import (
	"sellify-app/internal/domain/pages"
	"time"
)

type PaymentStatus string

const (
	PaymentNone      PaymentStatus = "none"
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Submission is one form fill on a checkout page. After creation it is
// mutated only by the webhook reconciler (payment status cascade).
type Submission struct {
	ID     uint `gorm:"primaryKey"`
	PageID uint `gorm:"index;not null"`
	Page   pages.CheckoutPage

	// FormData holds the raw submitted field map as JSON.
	FormData      string `gorm:"type:text"`
	CustomerEmail string `gorm:"index"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'none'"`
	PaymentID     *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
