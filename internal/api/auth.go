package api

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahmed2844ah-star/bokogaming/internal/core"
	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
	"github.com/ahmed2844ah-star/bokogaming/internal/utils"
)

// Request and Response structs
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"` // Username must be provided
	Password     string `json:"password" binding:"required"` // Password must be provided
	ReferralCode string `json:"referral_code"`               // Optional code of the referring user
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  UserResponse `json:"user"`  // Signed-in user
}

// UserResponse is the client-facing user shape; the credential hash
// never leaves the roster.
type UserResponse struct {
	ID                   string                `json:"id"`
	Username             string                `json:"username"`
	Role                 string                `json:"role"`
	Balance              float64               `json:"balance"`
	BonusBalance         float64               `json:"bonus_balance"`
	HasClaimedFirstBonus bool                  `json:"has_claimed_first_bonus"`
	Avatar               string                `json:"avatar"`
	JoinedAt             time.Time             `json:"joined_date"`
	ReferralCode         string                `json:"referral_code,omitempty"`
	ReferralCount        int                   `json:"referral_count,omitempty"`
	ReferralEarnings     float64               `json:"referral_earnings,omitempty"`
	ReferralLevel        string                `json:"referral_level,omitempty"`
	ReferralHistory      []domain.ReferredUser `json:"referral_history,omitempty"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Role:                 u.Role,
		Balance:              u.Balance,
		BonusBalance:         u.BonusBalance,
		HasClaimedFirstBonus: u.HasClaimedFirstBonus,
		Avatar:               u.Avatar,
		JoinedAt:             u.JoinedAt,
		ReferralCode:         u.ReferralCode,
		ReferralCount:        u.ReferralCount,
		ReferralEarnings:     u.ReferralEarnings,
		ReferralLevel:        u.ReferralLevel,
		ReferralHistory:      u.ReferralHistory,
	}
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username)
	return matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15
}

// RegisterHandler enrolls a new user, signs them in and returns a token
func RegisterHandler(state *core.State, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphabetic only"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-15 characters"})
			return
		}
		username := strings.ToLower(req.Username)
		if _, taken := state.FindByUsername(username); taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		id := uuid.NewString()
		user := domain.User{
			ID:            id,
			Username:      username,
			Password:      string(hash),
			Role:          "user",
			Avatar:        "https://api.dicebear.com/7.x/avataaars/svg?seed=" + username,
			JoinedAt:      time.Now(),
			ReferralCode:  "BOKO-" + strings.ToUpper(id[:8]),
			ReferralLevel: domain.ReferralBronze,
		}
		// Registration inserts the fresh record; login below always
		// signs in the roster's own copy.
		state.SignIn(user)
		if req.ReferralCode != "" {
			state.RecordReferral(req.ReferralCode, user)
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(state *core.State, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, ok := state.FindByUsername(strings.ToLower(req.Username))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// The roster record goes back into the session untouched, so
		// session and roster cannot diverge on login.
		state.SignIn(user)
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: toUserResponse(user)})
	}
}

// LogoutHandler clears the active session; the roster is untouched
func LogoutHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		state.SignOut()
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}
