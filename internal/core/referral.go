package core

import (
	"github.com/sirupsen/logrus"

	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
)

// ReferralCommission is the bonus credited to a referrer for each
// signup made with their code.
const ReferralCommission = 25

// RecordReferral credits the owner of code for referring the given new
// user: the referral count, earnings and history grow, the commission
// lands in the referrer's bonus balance, the tier is recomputed and a
// completed referral_bonus settlement is recorded. An unknown code is
// ignored and reported false.
func (s *State) RecordReferral(code string, referred domain.User) bool {
	if code == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ReferralCode != code || s.users[i].ID == referred.ID {
			continue
		}
		u := &s.users[i]
		u.ReferralCount++
		u.ReferralEarnings += ReferralCommission
		u.BonusBalance += ReferralCommission
		u.ReferralLevel = referralLevel(u.ReferralCount)
		u.ReferralHistory = append(u.ReferralHistory, domain.ReferredUser{
			ID:               referred.ID,
			Username:         referred.Username,
			Avatar:           referred.Avatar,
			JoinedAt:         referred.JoinedAt,
			Status:           "active",
			CommissionEarned: ReferralCommission,
		})
		s.persistRoster()
		s.appendTransaction(TransactionFields{
			UserID:   u.ID,
			Username: u.Username,
			Amount:   ReferralCommission,
			Kind:     domain.KindReferralBonus,
			Status:   domain.StatusCompleted,
		})
		s.log.WithFields(logrus.Fields{
			"referrer_id": u.ID,
			"referred_id": referred.ID,
			"count":       u.ReferralCount,
		}).Info("Referral recorded")
		return true
	}
	return false
}

func referralLevel(count int) string {
	switch {
	case count >= 40:
		return domain.ReferralDiamond
	case count >= 15:
		return domain.ReferralGold
	case count >= 5:
		return domain.ReferralSilver
	default:
		return domain.ReferralBronze
	}
}
