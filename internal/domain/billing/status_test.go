package billing

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusRefunded, false},

		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},

		// a customer may retry the card after a failure
		{StatusFailed, StatusCompleted, true},
		{StatusFailed, StatusPending, false},
		{StatusFailed, StatusCancelled, false},

		{StatusCompleted, StatusRefunded, true},
		{StatusCompleted, StatusProcessing, false},
		{StatusCompleted, StatusFailed, false},
		{StatusCompleted, StatusPending, false},

		{StatusCancelled, StatusCompleted, false},
		{StatusRefunded, StatusCompleted, false},

		// self-transitions are no-ops, not transitions
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTerminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusProcessing} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
