package pages

import (
	"net/http"
	"strings"

	"sellify-app/database"
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) (*users.User, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return nil, false
	}
	var user users.User
	if err := database.DB.Preload("Plan").Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// ownedPage loads the page in :id and enforces ownership.
func ownedPage(c *gin.Context, userID uint) (*pages.CheckoutPage, bool) {
	var page pages.CheckoutPage
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return nil, false
	}
	return &page, true
}

func CreatePage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	// Plan limit: page count
	if user.Plan != nil && user.Plan.MaxPages > 0 {
		var count int64
		database.DB.Model(&pages.CheckoutPage{}).Where("user_id = ?", user.ID).Count(&count)
		if count >= int64(user.Plan.MaxPages) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Page limit reached for your plan"})
			return
		}
	}

	fieldsJSON, err := encodeFields(input.Fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field schema"})
		return
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "eur"
	}

	page := pages.CheckoutPage{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Amount:      input.Amount,
		Currency:    currency,
		Fields:      fieldsJSON,
		SuccessURL:  input.SuccessURL,
		CancelURL:   input.CancelURL,
	}

	if err := database.DB.Create(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
		return
	}

	if _, err := pages.EnsurePageSlug(database.DB, &page); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	c.JSON(http.StatusCreated, toResponse(&page))
}

func ListPages(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var list []pages.CheckoutPage
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pages"})
		return
	}

	resp := make([]PageResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func GetPage(c *gin.Context) {
	page, ok := ownedPage(c, c.GetUint("user_id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(page))
}

func UpdatePage(c *gin.Context) {
	page, ok := ownedPage(c, c.GetUint("user_id"))
	if !ok {
		return
	}

	var input PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must not be negative"})
		return
	}

	fieldsJSON, err := encodeFields(input.Fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid field schema"})
		return
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = page.Currency
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"amount":      input.Amount,
		"currency":    currency,
		"fields":      fieldsJSON,
		"success_url": input.SuccessURL,
		"cancel_url":  input.CancelURL,
	}

	if err := database.DB.Model(&pages.CheckoutPage{}).
		Where("id = ?", page.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
		return
	}

	var updated pages.CheckoutPage
	database.DB.First(&updated, page.ID)
	c.JSON(http.StatusOK, toResponse(&updated))
}

func DeletePage(c *gin.Context) {
	page, ok := ownedPage(c, c.GetUint("user_id"))
	if !ok {
		return
	}

	if err := database.DB.Delete(&pages.CheckoutPage{}, page.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}

func PublishPage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, ok := ownedPage(c, user.ID)
	if !ok {
		return
	}

	// Paid pages need a chargeable Connect account; free pages publish freely.
	if page.Amount > 0 && !user.ChargesEnabled {
		c.JSON(http.StatusConflict, gin.H{"error": "Connect your Stripe account before publishing a paid page"})
		return
	}

	if err := database.DB.Model(&pages.CheckoutPage{}).
		Where("id = ?", page.ID).
		Update("published", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page published"})
}

func UnpublishPage(c *gin.Context) {
	page, ok := ownedPage(c, c.GetUint("user_id"))
	if !ok {
		return
	}

	if err := database.DB.Model(&pages.CheckoutPage{}).
		Where("id = ?", page.ID).
		Update("published", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unpublish page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page unpublished"})
}
