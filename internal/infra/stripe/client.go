package stripe

import (
	"errors"

	stripego "github.com/stripe/stripe-go/v75"
)

var initialized bool

// Init configures the process-wide Stripe client key. Called exactly once
// from main after config is loaded; handlers must not set stripego.Key
// themselves.
func Init(secretKey string) error {
	if secretKey == "" {
		return errors.New("stripe secret key is empty")
	}
	stripego.Key = secretKey
	initialized = true
	return nil
}

// Ready reports whether Init ran. Handlers that call the Stripe API check
// this instead of re-reading the environment.
func Ready() bool {
	return initialized
}
