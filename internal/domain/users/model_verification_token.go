package users

import "time"

type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_verification_tokens_user_type"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"uniqueIndex:idx_verification_tokens_user_type"` // "" (email verification) | "password_reset"
	ExpiresAt time.Time
	CreatedAt time.Time
}
