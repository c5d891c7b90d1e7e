package pages

import (
	"sellify-app/internal/domain/users"
	"time"
)

// CheckoutPage is a seller-built, no-code checkout page. The slug is the
// public address; Amount is in minor units (0 = free page, submissions
// complete without a payment).
type CheckoutPage struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`
	User   users.User

	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex:idx_checkout_pages_slug;not null"`
	Description string

	Amount   int64  // minor units
	Currency string `gorm:"type:varchar(3);not null;default:'eur'"`

	// Fields holds the custom form field schema as JSON (see Field).
	Fields string `gorm:"type:text"`

	SuccessURL *string
	CancelURL  *string

	Published bool
	Views     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
