package stripewebhooks

import (
	"encoding/json"
	"fmt"
	"log"

	"sellify-app/internal/domain/billing"
	stripeinfra "sellify-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

// payment_intent.succeeded confirms completion when
// checkout.session.completed fired out of order or was missed entirely.
// The intent's own status field is authoritative over the event name.
func handlePaymentIntentSucceeded(event *stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	if st := stripeinfra.PaymentStatusFromIntent(string(intent.Status)); st != billing.StatusCompleted {
		log.Printf("webhook: intent %s reports %s, not completing", intent.ID, intent.Status)
		return nil
	}

	pay, err := findPaymentByIntent(intent.ID, intent.Metadata)
	if err != nil {
		return err
	}
	if pay == nil {
		return nil
	}

	receiptURL := ""
	if intent.LatestCharge != nil {
		receiptURL = intent.LatestCharge.ReceiptURL
	}

	return applyCompleted(pay, intent.ID, receiptURL)
}

func handlePaymentIntentFailed(event *stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	pay, err := findPaymentByIntent(intent.ID, intent.Metadata)
	if err != nil {
		return err
	}
	if pay == nil {
		return nil
	}

	lastError := "payment failed"
	if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
		lastError = intent.LastPaymentError.Msg
	}

	return applyFailed(pay, intent.ID, lastError)
}
