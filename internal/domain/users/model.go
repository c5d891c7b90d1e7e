package users

import (
	"sellify-app/internal/domain/plans"
	"time"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	PlanID *uint
	Plan   *plans.Plan

	TrialStartAt *time.Time `gorm:"column:trial_start_at"`
	TrialEndAt   *time.Time `gorm:"column:trial_end_at"`

	// Stripe Connect. The account id links account.updated webhooks back to
	// the seller; the capability flags are refreshed from those events and
	// gate whether the seller's pages may take payments.
	StripeAccountID  *string `gorm:"column:stripe_account_id;uniqueIndex:idx_users_stripe_account_id"`
	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	ChargesEnabled   bool    `gorm:"column:charges_enabled"`
	PayoutsEnabled   bool    `gorm:"column:payouts_enabled"`
	DetailsSubmitted bool    `gorm:"column:details_submitted"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
