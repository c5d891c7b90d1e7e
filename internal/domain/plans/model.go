package plans

type Plan struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Tier     string `gorm:"column:tier;uniqueIndex:idx_plans_tier" json:"tier"` // "free" | "starter" | "pro" | "business"
	PriceEUR float64 `json:"price_eur"`

	// Limits enforced at page creation / public submit time.
	MaxPages           int     `json:"max_pages"`            // 0 = unlimited
	MaxSubmissions     int     `json:"max_submissions"`      // per calendar month, 0 = unlimited
	PlatformFeePercent float64 `json:"platform_fee_percent"` // applied to connected payments
	CustomDomain       bool    `json:"custom_domain"`
	RemoveBranding     bool    `json:"remove_branding"`
}
