package stripewebhooks

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v75"
)

func handleCheckoutSessionCompleted(event *stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	pay, err := findPaymentBySession(session.ID)
	if err != nil {
		return err
	}
	if pay == nil {
		return nil
	}

	intentID := ""
	if session.PaymentIntent != nil {
		intentID = session.PaymentIntent.ID
	}

	return applyCompleted(pay, intentID, "")
}
