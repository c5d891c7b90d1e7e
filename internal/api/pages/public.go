package pages

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sellify-app/config"
	"sellify-app/database"
	"sellify-app/internal/domain/billing"
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/submissions"
	stripeinfra "sellify-app/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

// GetPublicPage is GET /api/p/:slug — the customer-facing page definition.
func GetPublicPage(c *gin.Context) {
	var page pages.CheckoutPage
	if err := database.DB.
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	// Best-effort view counter; analytics reads it later.
	database.DB.Model(&pages.CheckoutPage{}).
		Where("id = ?", page.ID).
		UpdateColumn("views", gorm.Expr("views + 1"))

	fields, err := page.FieldSchema()
	if err != nil {
		fields = nil
	}
	if fields == nil {
		fields = []pages.Field{}
	}

	c.JSON(http.StatusOK, PublicPageResponse{
		Title:       page.Title,
		Slug:        page.Slug,
		Description: page.Description,
		Amount:      page.Amount,
		Currency:    page.Currency,
		Fields:      fields,
	})
}

type submitInput struct {
	CustomerEmail string                 `json:"customer_email" binding:"required,email"`
	FormData      map[string]interface{} `json:"form_data"`
}

// SubmitPage is POST /api/p/:slug/submit. Free pages complete immediately;
// paid pages create a pending Submission + Payment and return a Stripe
// Checkout URL. The payment then only ever changes state through the
// webhook reconciler.
func SubmitPage(c *gin.Context) {
	var page pages.CheckoutPage
	if err := database.DB.
		Preload("User.Plan").
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&page).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	var input submitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.FormData == nil {
		input.FormData = map[string]interface{}{}
	}

	fields, err := page.FieldSchema()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Page schema is invalid"})
		return
	}
	if err := pages.ValidateSubmission(fields, input.FormData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Plan limit: submissions this calendar month across the seller's pages
	if page.User.Plan != nil && page.User.Plan.MaxSubmissions > 0 {
		monthStart := time.Now().UTC().Truncate(24 * time.Hour)
		monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)

		var count int64
		database.DB.Model(&submissions.Submission{}).
			Joins("JOIN checkout_pages ON checkout_pages.id = submissions.page_id").
			Where("checkout_pages.user_id = ? AND submissions.created_at >= ?", page.UserID, monthStart).
			Count(&count)
		if count >= int64(page.User.Plan.MaxSubmissions) {
			c.JSON(http.StatusForbidden, gin.H{"error": "This page is not accepting submissions right now"})
			return
		}
	}

	formJSON, _ := json.Marshal(input.FormData)

	// Free page: no payment leg at all.
	if page.Amount == 0 {
		sub := submissions.Submission{
			PageID:        page.ID,
			FormData:      string(formJSON),
			CustomerEmail: input.CustomerEmail,
			PaymentStatus: submissions.PaymentNone,
		}
		if err := database.DB.Create(&sub).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store submission"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"submission_id": sub.ID, "status": "completed"})
		return
	}

	if !stripeinfra.Ready() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payments not configured"})
		return
	}
	if !page.User.ChargesEnabled || page.User.StripeAccountID == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This page cannot accept payments right now"})
		return
	}

	// Submission, session and payment stand or fall together: a session
	// failure rolls the submission back instead of leaving a pending orphan.
	var sub submissions.Submission
	var payment billing.Payment
	var checkout *stripe.CheckoutSession

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		sub = submissions.Submission{
			PageID:        page.ID,
			FormData:      string(formJSON),
			CustomerEmail: input.CustomerEmail,
			PaymentStatus: submissions.PaymentPending,
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		session, err := createCheckoutSession(&page, &sub)
		if err != nil {
			return err
		}
		checkout = session

		payment = billing.Payment{
			UserID:          page.UserID,
			PageID:          page.ID,
			SubmissionID:    &sub.ID,
			StripeSessionID: session.ID,
			Amount:          page.Amount,
			Currency:        page.Currency,
			Status:          billing.StatusPending,
		}
		return tx.Create(&payment).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start checkout"})
		return
	}

	// Store the session's intent id right away so payment_intent events can
	// be linked even when checkout.session.completed never arrives.
	_ = storeIntentID(checkout, payment.ID)

	c.JSON(http.StatusOK, gin.H{
		"url":           checkout.URL,
		"submission_id": sub.ID,
	})
}

// Package variable so tests can stub the Stripe call.
var createCheckoutSession = func(page *pages.CheckoutPage, sub *submissions.Submission) (*stripe.CheckoutSession, error) {
	successURL := config.CLIENT_URL + "/p/" + page.Slug + "/thanks"
	if page.SuccessURL != nil && *page.SuccessURL != "" {
		successURL = *page.SuccessURL
	}
	cancelURL := config.CLIENT_URL + "/p/" + page.Slug
	if page.CancelURL != nil && *page.CancelURL != "" {
		cancelURL = *page.CancelURL
	}

	feePercent := 0.0
	if page.User.Plan != nil {
		feePercent = page.User.Plan.PlatformFeePercent
	}
	applicationFee := int64(float64(page.Amount) * feePercent / 100.0)

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(successURL),
		CancelURL:     stripe.String(cancelURL),
		CustomerEmail: stripe.String(sub.CustomerEmail),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(page.Currency),
					UnitAmount: stripe.Int64(page.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(page.Title),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(*page.User.StripeAccountID),
			},
			Metadata: map[string]string{
				"page_id":       fmt.Sprint(page.ID),
				"submission_id": fmt.Sprint(sub.ID),
			},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(sub.ID)),
	}
	if applicationFee > 0 {
		params.PaymentIntentData.ApplicationFeeAmount = stripe.Int64(applicationFee)
	}
	params.AddMetadata("page_id", fmt.Sprint(page.ID))
	params.AddMetadata("submission_id", fmt.Sprint(sub.ID))

	return checkoutsession.New(params)
}

// storeIntentID persists the session's payment intent id on the Payment.
// Best effort: the session lookup path stays the primary link.
func storeIntentID(session *stripe.CheckoutSession, paymentID uint) error {
	if session.PaymentIntent == nil || session.PaymentIntent.ID == "" {
		return nil
	}
	return database.DB.Model(&billing.Payment{}).
		Where("id = ?", paymentID).
		Update("stripe_payment_intent_id", session.PaymentIntent.ID).Error
}
