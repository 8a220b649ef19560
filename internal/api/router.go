package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ahmed2844ah-star/bokogaming/internal/core"
	"github.com/ahmed2844ah-star/bokogaming/internal/middleware"
)

// NewRouter wires every route group: public auth, JWT-protected wallet
// and admin-only review endpoints.
func NewRouter(state *core.State, rdb *redis.Client, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// Auth routes
	r.POST("/user", RegisterHandler(state, jwtSecret)) // Registration endpoint
	r.GET("/user", LoginHandler(state, jwtSecret))     // Login endpoint

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet")
	// Protect wallet routes with JWT middleware and inject Redis client into context
	walletGroup.Use(middleware.JWTAuthMiddleware(jwtSecret), func(c *gin.Context) {
		c.Set("redisClient", rdb)
		c.Next()
	})
	walletGroup.GET("", GetWalletHandler(state, rdb))
	walletGroup.POST("/adjust", AdjustBalanceHandler(state))
	walletGroup.POST("/deposit", DepositHandler(state))
	walletGroup.POST("/withdraw", WithdrawHandler(state))
	walletGroup.POST("/bonus", ClaimBonusHandler(state))
	walletGroup.GET("/transactions", GetTransactionHistoryHandler(state, rdb))

	// Session, settings and theme routes (protected by JWT)
	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware(jwtSecret))
	authed.POST("/logout", LogoutHandler(state))
	authed.GET("/settings", GetSettingsHandler(state))
	authed.GET("/theme", GetThemeHandler(state))
	authed.PUT("/theme", SetThemeHandler(state))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.AdminOnlyMiddleware(state), func(c *gin.Context) {
		c.Set("redisClient", rdb)
		c.Next()
	})
	adminGroup.GET("/users", ListUsersHandler(state, rdb))
	adminGroup.PUT("/users/:id", UpdateUserHandler(state))
	adminGroup.GET("/transactions", ListTransactionsHandler(state, rdb))
	adminGroup.PUT("/transactions/:id/status", UpdateTransactionStatusHandler(state))
	adminGroup.PUT("/settings", UpdateSettingsHandler(state))

	return r
}
