package access

import (
	"testing"
	"time"

	"sellify-app/internal/domain/plans"
	"sellify-app/internal/domain/users"
)

func TestComputeEffectiveAccessState(t *testing.T) {
	now := time.Now()
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	proPlan := &plans.Plan{Tier: plans.TierPro}
	freePlan := &plans.Plan{Tier: plans.TierFree}

	cases := []struct {
		name string
		user users.User
		want AccessState
	}{
		{"active trial", users.User{TrialEndAt: &future}, AccessTrial},
		{"active trial beats plan", users.User{TrialEndAt: &future, Plan: freePlan, IsVerified: true}, AccessTrial},
		{"paid plan after trial", users.User{TrialEndAt: &past, Plan: proPlan, IsVerified: true}, AccessFull},
		{"verified free after trial", users.User{TrialEndAt: &past, Plan: freePlan, IsVerified: true}, AccessLimited},
		{"verified no plan", users.User{TrialEndAt: &past, IsVerified: true}, AccessLimited},
		{"unverified after trial", users.User{TrialEndAt: &past, IsVerified: false}, AccessLocked},
		{"unverified no trial", users.User{IsVerified: false}, AccessLocked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeEffectiveAccessState(now, tc.user); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}
