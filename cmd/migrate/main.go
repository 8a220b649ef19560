package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahmed2844ah-star/bokogaming/internal/config"
	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
	"github.com/ahmed2844ah-star/bokogaming/internal/store"
)

// Initializes the local store and seeds the administrator account named
// in ADMIN_USER / ADMIN_PASS, unless it already exists.
func main() {
	cfg := config.LoadConfig()
	logger := logrus.StandardLogger()

	st, err := store.New(cfg.StorePath, logger)
	if err != nil {
		logrus.Fatalf("failed to open store: %v", err)
	}

	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		logrus.Info("Store initialized; no admin account configured")
		return
	}

	users := st.LoadRoster()
	for _, u := range users {
		if u.Username == cfg.AdminUser {
			logrus.Info("Admin account already present")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash admin password: %v", err)
	}
	users = append(users, domain.User{
		ID:       uuid.NewString(),
		Username: cfg.AdminUser,
		Password: string(hash),
		Role:     "admin",
		JoinedAt: time.Now(),
	})
	if err := st.SaveRoster(users); err != nil {
		logrus.Fatalf("failed to persist roster: %v", err)
	}
	logrus.Info("Admin account seeded")
}
