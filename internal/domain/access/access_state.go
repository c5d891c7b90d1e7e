package access

import (
	"time"

	"sellify-app/internal/domain/plans"
	"sellify-app/internal/domain/users"
)

// Effective access for UI/product: trial|full|limited|locked.
//
// - active trial: everything open
// - paying tier: full
// - free tier (or trial ran out): limited — published pages stay live,
//   editing is capped by the free limits
// - never-verified account past its trial: locked
func ComputeEffectiveAccessState(now time.Time, u users.User) AccessState {
	if u.TrialEndAt != nil && now.Before(*u.TrialEndAt) {
		return AccessTrial
	}

	if plans.Paid(plans.PlanTier(u.Plan)) {
		return AccessFull
	}

	if !u.IsVerified {
		return AccessLocked
	}

	return AccessLimited
}
