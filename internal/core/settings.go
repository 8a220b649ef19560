package core

import (
	"github.com/sirupsen/logrus"

	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
)

// Settings returns the current configuration snapshot. The deposit
// method list and game map are copied, so a snapshot held by a game or
// the wallet flow never observes a later replacement.
func (s *State) Settings() domain.AdminSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySettings(s.settings)
}

// ReplaceSettings swaps in a new configuration wholesale. There is no
// partial merge at this layer; merge decisions belong to the admin UI.
func (s *State) ReplaceSettings(settings domain.AdminSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = copySettings(settings)
	s.log.WithFields(logrus.Fields{
		"deposit_methods": len(settings.DepositMethods),
		"games":           len(settings.GameSettings),
	}).Info("Admin settings replaced")
}

func copySettings(in domain.AdminSettings) domain.AdminSettings {
	out := in
	out.DepositMethods = make([]domain.DepositMethod, len(in.DepositMethods))
	copy(out.DepositMethods, in.DepositMethods)
	out.GameSettings = make(map[string]domain.GameConfig, len(in.GameSettings))
	for k, v := range in.GameSettings {
		out.GameSettings[k] = v
	}
	return out
}
