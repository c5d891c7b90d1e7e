package stripe

import (
	"testing"

	"sellify-app/internal/domain/billing"
)

func TestPaymentStatusFromIntent(t *testing.T) {
	cases := map[string]billing.Status{
		"succeeded":               billing.StatusCompleted,
		"processing":              billing.StatusProcessing,
		"canceled":                billing.StatusCancelled,
		"requires_payment_method": billing.StatusPending,
		"requires_action":         billing.StatusPending,
		" succeeded ":             billing.StatusCompleted,
		"something_new":           billing.StatusPending,
		"":                        billing.StatusPending,
	}
	for in, want := range cases {
		if got := PaymentStatusFromIntent(in); got != want {
			t.Errorf("PaymentStatusFromIntent(%q) = %s, want %s", in, got, want)
		}
	}
}
