package access

import (
	"sellify-app/internal/domain/plans"
)

func CapabilitiesFor(state AccessState, plan *plans.Plan) []string {
	if state == AccessLocked {
		return []string{}
	}

	if state == AccessLimited {
		return []string{"view_analytics"}
	}

	// trial
	if state == AccessTrial {
		return []string{"create_pages", "accept_payments", "view_analytics"}
	}

	// full: tier-based
	switch plans.PlanTier(plan) {
	case plans.TierPro:
		return []string{"create_pages", "accept_payments", "view_analytics", "custom_domain"}
	case plans.TierBusiness:
		return []string{"create_pages", "accept_payments", "view_analytics", "custom_domain", "remove_branding"}
	default:
		return []string{"create_pages", "accept_payments", "view_analytics"}
	}
}
