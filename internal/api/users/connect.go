package users

import (
	"net/http"

	"sellify-app/config"
	"sellify-app/database"
	"sellify-app/internal/domain/users"
	stripeinfra "sellify-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/account"
	"github.com/stripe/stripe-go/v75/accountlink"
)

// ConnectStripe is POST /api/users/connect-stripe: creates an Express
// account on first call (idempotent afterwards) and returns a fresh
// onboarding link.
func ConnectStripe(c *gin.Context) {
	if !stripeinfra.Ready() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe not configured"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	accountID := ""
	if user.StripeAccountID != nil {
		accountID = *user.StripeAccountID
	}

	if accountID == "" {
		acct, err := account.New(&stripe.AccountParams{
			Type:  stripe.String(string(stripe.AccountTypeExpress)),
			Email: stripe.String(user.Email),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe account"})
			return
		}

		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_account_id", acct.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe account"})
			return
		}
		accountID = acct.ID
	}

	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(config.CLIENT_URL + "/settings/payments?refresh=1"),
		ReturnURL:  stripe.String(config.CLIENT_URL + "/settings/payments?connected=1"),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create onboarding link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": link.URL})
}

// RefreshConnectStatus is POST /api/users/connect-stripe/refresh: re-reads
// the account from Stripe and updates the capability flags. The same fields
// are also kept current by account.updated webhooks; this endpoint covers
// the return-from-onboarding redirect.
func RefreshConnectStatus(c *gin.Context) {
	if !stripeinfra.Ready() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe not configured"})
		return
	}

	userID := c.GetUint("user_id")
	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if user.StripeAccountID == nil || *user.StripeAccountID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe account yet (connect first)"})
		return
	}

	acct, err := account.GetByID(*user.StripeAccountID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe account"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"charges_enabled":   acct.ChargesEnabled,
			"payouts_enabled":   acct.PayoutsEnabled,
			"details_submitted": acct.DetailsSubmitted,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account status"})
		return
	}

	c.JSON(http.StatusOK, ConnectDTO{
		Connected:        true,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	})
}
