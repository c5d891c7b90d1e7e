package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree     = "free"
	TierStarter  = "starter"
	TierPro      = "pro"
	TierBusiness = "business"
)

// PlanTier returns the effective tier for a plan. Users without a plan row
// are treated as free tier.
func PlanTier(p *Plan) string {
	if p == nil {
		return TierFree
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	switch tier {
	case TierFree, TierStarter, TierPro, TierBusiness:
		return tier
	}
	return TierFree
}

// Paid reports whether the tier is a paying tier.
func Paid(tier string) bool {
	switch tier {
	case TierStarter, TierPro, TierBusiness:
		return true
	}
	return false
}

// Defaults returns the built-in plan catalogue, seeded at migration time.
// Admins can adjust limits afterwards via the plan-limit endpoints.
func Defaults() []Plan {
	return []Plan{
		{Name: "Free", Tier: TierFree, PriceEUR: 0, MaxPages: 1, MaxSubmissions: 25, PlatformFeePercent: 5.0},
		{Name: "Starter", Tier: TierStarter, PriceEUR: 9, MaxPages: 5, MaxSubmissions: 500, PlatformFeePercent: 2.0},
		{Name: "Pro", Tier: TierPro, PriceEUR: 29, MaxPages: 25, MaxSubmissions: 5000, PlatformFeePercent: 1.0, CustomDomain: true},
		{Name: "Business", Tier: TierBusiness, PriceEUR: 79, MaxPages: 0, MaxSubmissions: 0, PlatformFeePercent: 0.5, CustomDomain: true, RemoveBranding: true},
	}
}
