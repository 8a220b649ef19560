package domain

import "time"

// Referral tiers, recomputed from the referral count
const (
	ReferralBronze  = "Bronze"
	ReferralSilver  = "Silver"
	ReferralGold    = "Gold"
	ReferralDiamond = "Diamond"
)

// ReferredUser is one entry in a referrer's history
type ReferredUser struct {
	ID               string    `json:"id"`                // Referred user's ID
	Username         string    `json:"username"`          // Referred user's display name
	Avatar           string    `json:"avatar"`            // Avatar reference
	JoinedAt         time.Time `json:"joined_date"`       // When the referred user registered
	Status           string    `json:"status"`            // active or inactive
	TotalContributed float64   `json:"total_contributed"` // Cumulative deposits by the referred user
	CommissionEarned float64   `json:"commission_earned"` // Commission credited to the referrer
}

// User Model
type User struct {
	ID                   string         `json:"id"`                      // Opaque stable identity
	Username             string         `json:"username"`                // Display name, unique within the roster
	Password             string         `json:"password,omitempty"`      // Bcrypt hash; API responses use view structs that omit it
	Role                 string         `json:"role"`                    // Role: user or admin
	Balance              float64        `json:"balance"`                 // Real funds
	BonusBalance         float64        `json:"bonus_balance"`           // Promotional funds, consumed before real funds
	HasClaimedFirstBonus bool           `json:"has_claimed_first_bonus"` // One-time welcome bonus flag
	Avatar               string         `json:"avatar"`                  // Avatar reference
	JoinedAt             time.Time      `json:"joined_date"`             // Registration timestamp
	ReferralCode         string         `json:"referral_code,omitempty"`
	ReferralCount        int            `json:"referral_count,omitempty"`
	ReferralEarnings     float64        `json:"referral_earnings,omitempty"`
	ReferralLevel        string         `json:"referral_level,omitempty"`
	ReferralHistory      []ReferredUser `json:"referral_history,omitempty"`
}
