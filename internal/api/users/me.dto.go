package users

import "time"

type MeResponse struct {
	User   UserDTO    `json:"user"`
	Plan   *PlanDTO   `json:"plan,omitempty"`
	Trial  *TrialDTO  `json:"trial,omitempty"`
	Access AccessDTO  `json:"access"`
	Stripe ConnectDTO `json:"stripe"`
}

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

type PlanDTO struct {
	Name               string  `json:"name"`
	Tier               string  `json:"tier"`
	MaxPages           int     `json:"max_pages"`
	MaxSubmissions     int     `json:"max_submissions"`
	PlatformFeePercent float64 `json:"platform_fee_percent"`
	CustomDomain       bool    `json:"custom_domain"`
	RemoveBranding     bool    `json:"remove_branding"`
}

type TrialDTO struct {
	Active bool       `json:"active"`
	EndsAt *time.Time `json:"ends_at,omitempty"`
}

type AccessDTO struct {
	State        string   `json:"state"`
	Capabilities []string `json:"capabilities"`
}

type ConnectDTO struct {
	Connected        bool `json:"connected"`
	ChargesEnabled   bool `json:"charges_enabled"`
	PayoutsEnabled   bool `json:"payouts_enabled"`
	DetailsSubmitted bool `json:"details_submitted"`
}
