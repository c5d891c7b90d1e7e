package admin

import (
	"net/http"
	"time"

	"sellify-app/database"
	"sellify-app/internal/domain/billing"
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Lastname         string     `json:"lastname"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	IsVerified       bool       `json:"is_verified"`
	PlanName         *string    `json:"plan_name,omitempty"`
	StripeAccountID  *string    `json:"stripe_account_id,omitempty"`
	ChargesEnabled   bool       `json:"charges_enabled"`
	TrialEndAt       *time.Time `json:"trial_end_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type AdminPayment struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	PageTitle  string  `json:"page_title"`
	Amount     int64   `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	ReceiptURL *string `json:"receipt_url,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func AdminDashboard(c *gin.Context) {
	var totalUsers int64
	var totalPages int64
	var totalRevenue int64
	var recentRevenue int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&pages.CheckoutPage{}).Count(&totalPages)
	database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", billing.StatusCompleted, thirtyDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&recentRevenue)

	type PlanCount struct {
		Name  *string
		Count int
	}
	var counts []PlanCount
	database.DB.
		Table("users").
		Select("plans.name, COUNT(users.id) as count").
		Joins("LEFT JOIN plans ON users.plan_id = plans.id").
		Group("plans.name").
		Scan(&counts)

	usersPerPlan := map[string]int{}
	for _, pc := range counts {
		name := "No Plan"
		if pc.Name != nil {
			name = *pc.Name
		}
		usersPerPlan[name] = pc.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":    totalUsers,
		"total_pages":    totalPages,
		"total_revenue":  totalRevenue,
		"recent_revenue": recentRevenue,
		"users_per_plan": usersPerPlan,
	})
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Preload("Plan").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	adminUsers := make([]AdminUser, 0, len(list))
	for _, u := range list {
		var planName *string
		if u.Plan != nil {
			planName = &u.Plan.Name
		}

		adminUsers = append(adminUsers, AdminUser{
			ID:              u.ID,
			Name:            u.Name,
			Lastname:        u.Lastname,
			Email:           u.Email,
			Role:            u.Role,
			IsVerified:      u.IsVerified,
			PlanName:        planName,
			StripeAccountID: u.StripeAccountID,
			ChargesEnabled:  u.ChargesEnabled,
			TrialEndAt:      u.TrialEndAt,
			CreatedAt:       u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := database.DB.
		Preload("User").
		Preload("Page").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	result := make([]AdminPayment, 0, len(payments))
	for _, p := range payments {
		result = append(result, AdminPayment{
			ID:         p.ID,
			Email:      p.User.Email,
			PageTitle:  p.Page.Title,
			Amount:     p.Amount,
			Currency:   p.Currency,
			Status:     string(p.Status),
			ReceiptURL: p.ReceiptURL,
			CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetUserDetails(c *gin.Context) {
	var user users.User
	if err := database.DB.Preload("Plan").First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var userPages []pages.CheckoutPage
	database.DB.Where("user_id = ?", user.ID).Find(&userPages)

	var payments []billing.Payment
	if err := database.DB.Preload("Page").Where("user_id = ?", user.ID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"pages":    userPages,
		"payments": payments,
	})
}
