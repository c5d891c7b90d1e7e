package billing

import (
	"net/http"

	"sellify-app/database"
	"sellify-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GetPaymentHistory is GET /api/payments — the seller's received payments,
// newest first. ?page_id= narrows to one checkout page.
func GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	q := database.DB.
		Preload("Page").
		Preload("Submission").
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if pageID := c.Query("page_id"); pageID != "" {
		q = q.Where("page_id = ?", pageID)
	}

	var payments []billing.Payment
	if err := q.Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	type paymentDTO struct {
		ID           uint    `json:"id"`
		PageID       uint    `json:"page_id"`
		PageTitle    string  `json:"page_title"`
		SubmissionID *uint   `json:"submission_id,omitempty"`
		Amount       int64   `json:"amount"`
		Currency     string  `json:"currency"`
		Status       string  `json:"status"`
		LastError    *string `json:"last_error,omitempty"`
		ReceiptURL   *string `json:"receipt_url,omitempty"`
		CreatedAt    string  `json:"created_at"`
	}

	result := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		result = append(result, paymentDTO{
			ID:           p.ID,
			PageID:       p.PageID,
			PageTitle:    p.Page.Title,
			SubmissionID: p.SubmissionID,
			Amount:       p.Amount,
			Currency:     p.Currency,
			Status:       string(p.Status),
			LastError:    p.LastError,
			ReceiptURL:   p.ReceiptURL,
			CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}
