package billing

// Status is the payment state machine. Transitions are monotonic toward a
// terminal state; nothing regresses a payment back to pending.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s -> next is legal.
// A failed payment may still complete (the customer retried the card in the
// same session), and a completed payment may be refunded. Everything else
// out of a terminal state is rejected, so a late payment_intent.succeeded
// can never pull a completed payment back to processing.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCompleted ||
			next == StatusFailed || next == StatusCancelled
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed || next == StatusCancelled
	case StatusFailed:
		return next == StatusCompleted
	case StatusCompleted:
		return next == StatusRefunded
	default:
		return false
	}
}
