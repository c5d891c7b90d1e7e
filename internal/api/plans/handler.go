package plans

import (
	"net/http"

	"sellify-app/database"
	"sellify-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.Order("price_eur ASC").Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}

// UpdatePlanLimits is POST /api/admin/plans/:id (admin): tunes the limits of
// one plan without touching its tier.
func UpdatePlanLimits(c *gin.Context) {
	var plan plans.Plan
	if err := database.DB.First(&plan, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	var body struct {
		Name               *string  `json:"name"`
		PriceEUR           *float64 `json:"price_eur"`
		MaxPages           *int     `json:"max_pages"`
		MaxSubmissions     *int     `json:"max_submissions"`
		PlatformFeePercent *float64 `json:"platform_fee_percent"`
		CustomDomain       *bool    `json:"custom_domain"`
		RemoveBranding     *bool    `json:"remove_branding"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.PriceEUR != nil {
		updates["price_eur"] = *body.PriceEUR
	}
	if body.MaxPages != nil {
		updates["max_pages"] = *body.MaxPages
	}
	if body.MaxSubmissions != nil {
		updates["max_submissions"] = *body.MaxSubmissions
	}
	if body.PlatformFeePercent != nil {
		updates["platform_fee_percent"] = *body.PlatformFeePercent
	}
	if body.CustomDomain != nil {
		updates["custom_domain"] = *body.CustomDomain
	}
	if body.RemoveBranding != nil {
		updates["remove_branding"] = *body.RemoveBranding
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&plans.Plan{}).
		Where("id = ?", plan.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	var updated plans.Plan
	database.DB.First(&updated, plan.ID)
	c.JSON(http.StatusOK, updated)
}
