package stripewebhooks

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sellify-app/config"
	"sellify-app/database"
	"sellify-app/internal/domain/billing"
	"sellify-app/internal/domain/pages"
	"sellify-app/internal/domain/submissions"
	"sellify-app/internal/domain/users"
	"sellify-app/internal/domain/webhooks"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test_secret"

func setupWebhookTest(t *testing.T) *gin.Engine {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	database.DB = db
	config.STRIPE_WEBHOOK_SECRET = testWebhookSecret

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/webhooks/stripe", StripeWebhook)
	r.POST("/api/webhooks/mock-payment-complete", MockPaymentComplete)
	return r
}

// seedPendingPayment creates seller -> page -> submission -> pending payment.
func seedPendingPayment(t *testing.T, sessionID string) (*billing.Payment, *submissions.Submission) {
	t.Helper()

	user := users.User{Name: "Seller", Email: "seller@example.com", IsVerified: true}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	page := pages.CheckoutPage{UserID: user.ID, Title: "Yoga Class", Slug: "yoga-class-1", Amount: 2500, Currency: "eur", Published: true}
	if err := database.DB.Create(&page).Error; err != nil {
		t.Fatal(err)
	}
	sub := submissions.Submission{PageID: page.ID, FormData: `{"name":"Ada"}`, CustomerEmail: "ada@example.com", PaymentStatus: submissions.PaymentPending}
	if err := database.DB.Create(&sub).Error; err != nil {
		t.Fatal(err)
	}
	pay := billing.Payment{
		UserID:          user.ID,
		PageID:          page.ID,
		SubmissionID:    &sub.ID,
		StripeSessionID: sessionID,
		Amount:          2500,
		Currency:        "eur",
		Status:          billing.StatusPending,
	}
	if err := database.DB.Create(&pay).Error; err != nil {
		t.Fatal(err)
	}
	return &pay, &sub
}

func signBody(payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventBody(t *testing.T, eventID, eventType string, object map[string]interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"id":   eventID,
		"type": eventType,
		"data": map[string]interface{}{"object": object},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func deliver(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(body))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseStatus(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body %q: %v", w.Body.String(), err)
	}
	return resp["status"]
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	r := setupWebhookTest(t)

	body := eventBody(t, "evt_1", "checkout.session.completed", map[string]interface{}{"id": "cs_1"})
	w := deliver(r, body, "t=123,v1=deadbeef")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}

	var count int64
	database.DB.Model(&webhooks.WebhookEvent{}).Count(&count)
	if count != 0 {
		t.Fatalf("unsigned event must not be recorded, got %d rows", count)
	}
}

func TestWebhookCompletesPaymentFromCheckoutSession(t *testing.T) {
	r := setupWebhookTest(t)
	pay, sub := seedPendingPayment(t, "cs_test_1")

	body := eventBody(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_1",
		"payment_intent": "pi_123",
	})
	w := deliver(r, body, signBody(body))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}
	if got := responseStatus(t, w); got != "processed" {
		t.Fatalf("got status %q, want processed", got)
	}

	var stored billing.Payment
	if err := database.DB.First(&stored, pay.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Status != billing.StatusCompleted {
		t.Fatalf("payment status = %s, want completed", stored.Status)
	}
	if !stored.WebhookProcessed || stored.PaymentCompletedAt == nil {
		t.Fatal("completion bookkeeping missing")
	}
	if stored.StripePaymentIntentID == nil || *stored.StripePaymentIntentID != "pi_123" {
		t.Fatalf("intent id not stored: %v", stored.StripePaymentIntentID)
	}

	var storedSub submissions.Submission
	if err := database.DB.First(&storedSub, sub.ID).Error; err != nil {
		t.Fatal(err)
	}
	if storedSub.PaymentStatus != submissions.PaymentCompleted {
		t.Fatalf("submission status = %s, want completed", storedSub.PaymentStatus)
	}
	if storedSub.PaymentID == nil || *storedSub.PaymentID != pay.ID {
		t.Fatal("submission not linked back to payment")
	}

	var ev webhooks.WebhookEvent
	if err := database.DB.Where("stripe_event_id = ?", "evt_1").First(&ev).Error; err != nil {
		t.Fatal(err)
	}
	if ev.Status != webhooks.EventCompleted {
		t.Fatalf("event status = %s, want completed", ev.Status)
	}
}

func TestWebhookDuplicateDeliveryIsNoOp(t *testing.T) {
	r := setupWebhookTest(t)
	pay, _ := seedPendingPayment(t, "cs_test_1")

	body := eventBody(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_1",
		"payment_intent": "pi_123",
	})

	first := deliver(r, body, signBody(body))
	if first.Code != http.StatusOK {
		t.Fatalf("first delivery got %d", first.Code)
	}

	var afterFirst billing.Payment
	database.DB.First(&afterFirst, pay.ID)

	second := deliver(r, body, signBody(body))
	if second.Code != http.StatusOK {
		t.Fatalf("redelivery got %d", second.Code)
	}
	if got := responseStatus(t, second); got != "duplicate" {
		t.Fatalf("got status %q, want duplicate", got)
	}

	var afterSecond billing.Payment
	database.DB.First(&afterSecond, pay.ID)
	if !afterSecond.UpdatedAt.Equal(afterFirst.UpdatedAt) {
		t.Fatal("redelivery must not touch the payment")
	}

	var count int64
	database.DB.Model(&webhooks.WebhookEvent{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 event row, got %d", count)
	}
}

func TestWebhookLateSucceededAfterCompleted(t *testing.T) {
	r := setupWebhookTest(t)
	pay, _ := seedPendingPayment(t, "cs_test_1")

	sessionBody := eventBody(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id":             "cs_test_1",
		"payment_intent": "pi_123",
	})
	if w := deliver(r, sessionBody, signBody(sessionBody)); w.Code != http.StatusOK {
		t.Fatalf("session event got %d", w.Code)
	}

	intentBody := eventBody(t, "evt_2", "payment_intent.succeeded", map[string]interface{}{
		"id":     "pi_123",
		"status": "succeeded",
	})
	w := deliver(r, intentBody, signBody(intentBody))
	if w.Code != http.StatusOK {
		t.Fatalf("late intent event got %d: %s", w.Code, w.Body.String())
	}

	var stored billing.Payment
	database.DB.First(&stored, pay.ID)
	if stored.Status != billing.StatusCompleted {
		t.Fatalf("payment status = %s, want completed", stored.Status)
	}
}

func TestWebhookSucceededEventNeedsSucceededIntent(t *testing.T) {
	r := setupWebhookTest(t)
	pay, sub := seedPendingPayment(t, "cs_test_1")

	// Event name says succeeded but the intent itself is still processing;
	// the intent status wins and nothing completes.
	body := eventBody(t, "evt_1", "payment_intent.succeeded", map[string]interface{}{
		"id":       "pi_123",
		"status":   "processing",
		"metadata": map[string]string{"submission_id": fmt.Sprint(sub.ID)},
	})
	w := deliver(r, body, signBody(body))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}

	var stored billing.Payment
	database.DB.First(&stored, pay.ID)
	if stored.Status != billing.StatusPending {
		t.Fatalf("payment status = %s, want pending", stored.Status)
	}
}

func TestWebhookFailedThenSucceeded(t *testing.T) {
	r := setupWebhookTest(t)
	pay, sub := seedPendingPayment(t, "cs_test_1")

	failBody := eventBody(t, "evt_1", "payment_intent.payment_failed", map[string]interface{}{
		"id":                 "pi_123",
		"metadata":           map[string]string{"submission_id": fmt.Sprint(sub.ID)},
		"last_payment_error": map[string]interface{}{"message": "Your card was declined."},
	})
	if w := deliver(r, failBody, signBody(failBody)); w.Code != http.StatusOK {
		t.Fatalf("failure event got %d: %s", w.Code, w.Body.String())
	}

	var failed billing.Payment
	database.DB.First(&failed, pay.ID)
	if failed.Status != billing.StatusFailed {
		t.Fatalf("payment status = %s, want failed", failed.Status)
	}
	if failed.LastError == nil || *failed.LastError != "Your card was declined." {
		t.Fatalf("gateway error not recorded: %v", failed.LastError)
	}

	var failedSub submissions.Submission
	database.DB.First(&failedSub, sub.ID)
	if failedSub.PaymentStatus != submissions.PaymentFailed {
		t.Fatalf("submission status = %s, want failed", failedSub.PaymentStatus)
	}

	// The customer retries with another card in the same session.
	retryBody := eventBody(t, "evt_2", "payment_intent.succeeded", map[string]interface{}{
		"id":     "pi_123",
		"status": "succeeded",
	})
	if w := deliver(r, retryBody, signBody(retryBody)); w.Code != http.StatusOK {
		t.Fatalf("retry event got %d: %s", w.Code, w.Body.String())
	}

	var completed billing.Payment
	database.DB.First(&completed, pay.ID)
	if completed.Status != billing.StatusCompleted {
		t.Fatalf("payment status = %s, want completed", completed.Status)
	}
	if completed.LastError != nil {
		t.Fatalf("last error should clear on completion, got %q", *completed.LastError)
	}
}

func TestWebhookUnknownSessionIsAcknowledged(t *testing.T) {
	r := setupWebhookTest(t)

	body := eventBody(t, "evt_1", "checkout.session.completed", map[string]interface{}{
		"id": "cs_from_some_other_env",
	})
	w := deliver(r, body, signBody(body))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}

	var payCount int64
	database.DB.Model(&billing.Payment{}).Count(&payCount)
	if payCount != 0 {
		t.Fatal("no payment must be created for an unknown session")
	}

	var ev webhooks.WebhookEvent
	if err := database.DB.Where("stripe_event_id = ?", "evt_1").First(&ev).Error; err != nil {
		t.Fatal(err)
	}
	if ev.Status != webhooks.EventCompleted {
		t.Fatalf("event status = %s, want completed", ev.Status)
	}
}

func TestWebhookUnknownEventTypeIgnored(t *testing.T) {
	r := setupWebhookTest(t)

	body := eventBody(t, "evt_1", "invoice.paid", map[string]interface{}{"id": "in_1"})
	w := deliver(r, body, signBody(body))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	if got := responseStatus(t, w); got != "ignored" {
		t.Fatalf("got status %q, want ignored", got)
	}

	var ev webhooks.WebhookEvent
	if err := database.DB.Where("stripe_event_id = ?", "evt_1").First(&ev).Error; err != nil {
		t.Fatal(err)
	}
	if ev.EventType != "invoice.paid" || ev.Status != webhooks.EventCompleted {
		t.Fatalf("event recorded as %s/%s", ev.EventType, ev.Status)
	}
}

func TestWebhookAccountUpdated(t *testing.T) {
	r := setupWebhookTest(t)

	acct := "acct_123"
	user := users.User{Name: "Seller", Email: "seller@example.com", StripeAccountID: &acct}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatal(err)
	}

	body := eventBody(t, "evt_1", "account.updated", map[string]interface{}{
		"id":                "acct_123",
		"charges_enabled":   true,
		"payouts_enabled":   true,
		"details_submitted": true,
	})
	w := deliver(r, body, signBody(body))
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}

	var stored users.User
	database.DB.First(&stored, user.ID)
	if !stored.ChargesEnabled || !stored.PayoutsEnabled || !stored.DetailsSubmitted {
		t.Fatalf("connect flags not refreshed: %+v", stored)
	}
}

func TestMockPaymentComplete(t *testing.T) {
	r := setupWebhookTest(t)
	config.APP_ENV = "development"
	pay, sub := seedPendingPayment(t, "cs_test_1")

	body, _ := json.Marshal(map[string]interface{}{
		"sessionId":     "cs_test_1",
		"customerEmail": "override@example.com",
		"formData":      map[string]interface{}{"name": "Grace"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mock-payment-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}

	var stored billing.Payment
	database.DB.First(&stored, pay.ID)
	if stored.Status != billing.StatusCompleted {
		t.Fatalf("payment status = %s, want completed", stored.Status)
	}
	if stored.StripePaymentIntentID == nil || *stored.StripePaymentIntentID != "pi_mock_cs_test_1" {
		t.Fatalf("mock intent id not stored: %v", stored.StripePaymentIntentID)
	}

	var storedSub submissions.Submission
	database.DB.First(&storedSub, sub.ID)
	if storedSub.CustomerEmail != "override@example.com" {
		t.Fatalf("customer email = %q", storedSub.CustomerEmail)
	}
	if storedSub.PaymentStatus != submissions.PaymentCompleted {
		t.Fatalf("submission status = %s, want completed", storedSub.PaymentStatus)
	}
}

func TestMockPaymentCompleteDisabledInProduction(t *testing.T) {
	r := setupWebhookTest(t)
	config.APP_ENV = "production"
	defer func() { config.APP_ENV = "development" }()
	seedPendingPayment(t, "cs_test_1")

	body, _ := json.Marshal(map[string]interface{}{"sessionId": "cs_test_1"})
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mock-payment-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}

func TestMockPaymentCompleteUnknownSession(t *testing.T) {
	r := setupWebhookTest(t)
	config.APP_ENV = "development"

	body, _ := json.Marshal(map[string]interface{}{"sessionId": "cs_nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mock-payment-complete", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", w.Code)
	}
}
