package users

import (
	"net/http"
	"time"

	"sellify-app/config"
	"sellify-app/database"
	"sellify-app/internal/domain/access"
	"sellify-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.
		Preload("Plan").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	state := access.ComputeEffectiveAccessState(now, user)

	var planDTO *PlanDTO
	if user.Plan != nil {
		planDTO = &PlanDTO{
			Name:               user.Plan.Name,
			Tier:               user.Plan.Tier,
			MaxPages:           user.Plan.MaxPages,
			MaxSubmissions:     user.Plan.MaxSubmissions,
			PlatformFeePercent: user.Plan.PlatformFeePercent,
			CustomDomain:       user.Plan.CustomDomain,
			RemoveBranding:     user.Plan.RemoveBranding,
		}
	}

	var trialDTO *TrialDTO
	if user.TrialEndAt != nil {
		trialDTO = &TrialDTO{
			Active: now.Before(*user.TrialEndAt),
			EndsAt: user.TrialEndAt,
		}
	}

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Plan:  planDTO,
		Trial: trialDTO,
		Access: AccessDTO{
			State:        string(state),
			Capabilities: access.CapabilitiesFor(state, user.Plan),
		},
		Stripe: ConnectDTO{
			Connected:        user.StripeAccountID != nil && *user.StripeAccountID != "",
			ChargesEnabled:   user.ChargesEnabled,
			PayoutsEnabled:   user.PayoutsEnabled,
			DetailsSubmitted: user.DetailsSubmitted,
		},
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.
		Where("token = ? AND type = ?", token, "").
		First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}
	if !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", t.UserID).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.CLIENT_URL+"/signin")
}
