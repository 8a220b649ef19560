package domain

import "time"

// Transaction kinds
const (
	KindDeposit       = "deposit"
	KindWithdrawal    = "withdrawal"
	KindReferralBonus = "referral_bonus"
	KindBonusCredit   = "bonus_credit"
)

// Transaction statuses. Completed and rejected are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

// Transaction Model. ID, UserID, Amount and Kind are fixed at creation;
// only Status moves, and only out of pending.
type Transaction struct {
	ID          string    `json:"id"`                    // Transaction identity
	UserID      string    `json:"user_id"`               // Owning user's identity
	Username    string    `json:"username"`              // Denormalized for admin display
	Amount      float64   `json:"amount"`                // Signed amount
	Kind        string    `json:"type"`                  // deposit, withdrawal, referral_bonus or bonus_credit
	Status      string    `json:"status"`                // pending, completed or rejected
	CreatedAt   time.Time `json:"date"`                  // Creation timestamp
	Destination string    `json:"destination,omitempty"` // Payout address or deposit method
}

// ValidKind reports whether k is a known transaction kind.
func ValidKind(k string) bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindReferralBonus, KindBonusCredit:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known transaction status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRejected:
		return true
	}
	return false
}
