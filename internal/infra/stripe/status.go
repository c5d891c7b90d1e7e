package stripe

import (
	"strings"

	"sellify-app/internal/domain/billing"
)

// PaymentStatusFromIntent maps a Stripe payment intent status onto the
// internal payment state machine.
func PaymentStatusFromIntent(s string) billing.Status {
	switch strings.TrimSpace(s) {
	case "succeeded":
		return billing.StatusCompleted
	case "processing":
		return billing.StatusProcessing
	case "canceled":
		return billing.StatusCancelled
	case "requires_payment_method", "requires_confirmation", "requires_action", "requires_capture":
		return billing.StatusPending
	default:
		return billing.StatusPending
	}
}
