package stripewebhooks

import (
	"github.com/stripe/stripe-go/v75"
)

// Handled event types.
const (
	eventCheckoutSessionCompleted = "checkout.session.completed"
	eventPaymentIntentSucceeded   = "payment_intent.succeeded"
	eventPaymentIntentFailed      = "payment_intent.payment_failed"
	eventAccountUpdated           = "account.updated"
)

type eventHandler func(event *stripe.Event) error

// eventHandlers maps event type -> handler. Types missing here are recorded
// and acknowledged without side effects.
var eventHandlers = map[string]eventHandler{
	eventCheckoutSessionCompleted: handleCheckoutSessionCompleted,
	eventPaymentIntentSucceeded:   handlePaymentIntentSucceeded,
	eventPaymentIntentFailed:      handlePaymentIntentFailed,
	eventAccountUpdated:           handleAccountUpdated,
}
