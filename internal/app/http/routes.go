package routes

import (
	adminapi "sellify-app/internal/api/admin"
	"sellify-app/internal/api/analytics"
	authapi "sellify-app/internal/api/auth"
	"sellify-app/internal/api/billing"
	pagesapi "sellify-app/internal/api/pages"
	"sellify-app/internal/api/plans"
	stripewebhooks "sellify-app/internal/api/stripewebhook"
	"sellify-app/internal/api/users"
	"sellify-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhooks need the raw body for signature verification, so they stay
	// outside the sanitizing group.
	r.POST("/api/webhooks/stripe", stripewebhooks.StripeWebhook)
	r.POST("/api/webhooks/mock-payment-complete", stripewebhooks.MockPaymentComplete)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public, sanitized
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/api/auth/register", authapi.Register)
	public.POST("/api/auth/login", authapi.Login)
	public.POST("/api/auth/resend-verification", authapi.ResendVerification)
	public.POST("/api/auth/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/api/auth/reset-password", authapi.ResetPassword)
	public.GET("/api/verify", users.VerifyEmail)
	public.GET("/api/plans", plans.ListPlans)

	public.GET("/api/auth/google", authapi.GoogleStart)
	public.GET("/api/auth/google/callback", authapi.GoogleCallback)

	// Customer-facing checkout pages
	public.GET("/api/p/:slug", pagesapi.GetPublicPage)
	public.POST("/api/p/:slug/submit", pagesapi.SubmitPage)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/api/users/me", users.GetCurrentUser)
	auth.POST("/api/users/connect-stripe", users.ConnectStripe)
	auth.POST("/api/users/connect-stripe/refresh", users.RefreshConnectStatus)
	auth.POST("/api/auth/change-password", authapi.ChangePassword)

	auth.GET("/api/payments", billing.GetPaymentHistory)

	auth.GET("/api/pages", pagesapi.ListPages)
	auth.GET("/api/pages/:id", pagesapi.GetPage)

	auth.GET("/api/analytics/pages/:id", analytics.GetPageStats)
	auth.GET("/api/analytics/pages/:id/export", analytics.ExportSubmissions)

	// Page mutations additionally require a non-locked account
	editing := auth.Group("/")
	editing.Use(middleware.RequireActiveAccess())

	editing.POST("/api/pages", pagesapi.CreatePage)
	editing.PUT("/api/pages/:id", pagesapi.UpdatePage)
	editing.DELETE("/api/pages/:id", pagesapi.DeletePage)
	editing.POST("/api/pages/:id/publish", pagesapi.PublishPage)
	editing.POST("/api/pages/:id/unpublish", pagesapi.UnpublishPage)

	// Admin
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/plans/:id", plans.UpdatePlanLimits)

	// Webhook introspection (operator-only reads)
	webhookAdmin := r.Group("/api/webhooks")
	webhookAdmin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	webhookAdmin.GET("/events", stripewebhooks.ListWebhookEvents)
	webhookAdmin.GET("/events/:eventId", stripewebhooks.GetWebhookEvent)
	webhookAdmin.GET("/stats", stripewebhooks.WebhookEventStats)
}
