package stripewebhooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"sellify-app/database"
	"sellify-app/internal/domain/users"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// account.updated keeps the seller's Connect capability flags current.
// Pages can only take payments while charges_enabled holds.
func handleAccountUpdated(event *stripe.Event) error {
	var account stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &account); err != nil {
		return fmt.Errorf("failed to parse account: %w", err)
	}
	if account.ID == "" {
		return nil
	}

	var user users.User
	err := database.DB.Where("stripe_account_id = ?", account.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("webhook: no user for stripe account %s, skipping", account.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user for account %s: %w", account.ID, err)
	}

	return database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"charges_enabled":   account.ChargesEnabled,
			"payouts_enabled":   account.PayoutsEnabled,
			"details_submitted": account.DetailsSubmitted,
		}).Error
}
