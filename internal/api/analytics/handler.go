package analytics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"sellify-app/database"
	"sellify-app/internal/domain/billing"
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/submissions"

	"github.com/gin-gonic/gin"
)

type PageStats struct {
	PageID               uint    `json:"page_id"`
	Title                string  `json:"title"`
	Views                int64   `json:"views"`
	Submissions          int64   `json:"submissions"`
	CompletedPayments    int64   `json:"completed_payments"`
	FailedPayments       int64   `json:"failed_payments"`
	Revenue              int64   `json:"revenue"` // minor units, completed only
	Currency             string  `json:"currency"`
	ConversionRate       float64 `json:"conversion_rate"`        // completed / views
	SubmissionCompletion float64 `json:"submission_completion"`  // completed / submissions
}

func ownedPage(c *gin.Context) (*pages.CheckoutPage, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var page pages.CheckoutPage
	if err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return nil, false
	}
	return &page, true
}

// GetPageStats is GET /api/analytics/pages/:id.
func GetPageStats(c *gin.Context) {
	page, ok := ownedPage(c)
	if !ok {
		return
	}

	var subCount int64
	database.DB.Model(&submissions.Submission{}).
		Where("page_id = ?", page.ID).
		Count(&subCount)

	var completed int64
	database.DB.Model(&billing.Payment{}).
		Where("page_id = ? AND status = ?", page.ID, billing.StatusCompleted).
		Count(&completed)

	var failed int64
	database.DB.Model(&billing.Payment{}).
		Where("page_id = ? AND status = ?", page.ID, billing.StatusFailed).
		Count(&failed)

	var revenue int64
	database.DB.Model(&billing.Payment{}).
		Where("page_id = ? AND status = ?", page.ID, billing.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue)

	stats := PageStats{
		PageID:            page.ID,
		Title:             page.Title,
		Views:             page.Views,
		Submissions:       subCount,
		CompletedPayments: completed,
		FailedPayments:    failed,
		Revenue:           revenue,
		Currency:          page.Currency,
	}
	if page.Views > 0 {
		stats.ConversionRate = float64(completed) / float64(page.Views)
	}
	if subCount > 0 {
		stats.SubmissionCompletion = float64(completed) / float64(subCount)
	}

	c.JSON(http.StatusOK, stats)
}

// ExportSubmissions is GET /api/analytics/pages/:id/export — CSV of all
// submissions, one column per schema field.
func ExportSubmissions(c *gin.Context) {
	page, ok := ownedPage(c)
	if !ok {
		return
	}

	fields, err := page.FieldSchema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Page schema is invalid"})
		return
	}

	var subs []submissions.Submission
	if err := database.DB.
		Where("page_id = ?", page.ID).
		Order("created_at ASC").
		Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-submissions.csv", page.Slug))

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	header := []string{"id", "created_at", "customer_email", "payment_status"}
	for _, f := range fields {
		header = append(header, f.Name)
	}
	if err := w.Write(header); err != nil {
		return
	}

	for _, sub := range subs {
		var data map[string]interface{}
		if sub.FormData != "" {
			_ = json.Unmarshal([]byte(sub.FormData), &data)
		}

		row := []string{
			fmt.Sprint(sub.ID),
			sub.CreatedAt.Format("2006-01-02 15:04:05"),
			sub.CustomerEmail,
			string(sub.PaymentStatus),
		}
		for _, f := range fields {
			row = append(row, stringifyValue(data[f.Name]))
		}
		if err := w.Write(row); err != nil {
			return
		}
	}
}

func stringifyValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprint(int64(val))
		}
		return fmt.Sprint(val)
	case bool:
		return fmt.Sprint(val)
	default:
		raw, _ := json.Marshal(val)
		return string(raw)
	}
}
