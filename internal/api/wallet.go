package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ahmed2844ah-star/bokogaming/internal/core"
	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
	"github.com/ahmed2844ah-star/bokogaming/internal/utils"
)

// welcomeBonus is the promotional credit granted by the one-time
// first-bonus claim.
const welcomeBonus = 100

// AdjustRequest is a signed settlement from a game: positive (or zero)
// for a win, negative for a stake. A pointer so a literal zero credit
// still binds.
type AdjustRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// DepositRequest asks for funds to be credited once an admin approves
type DepositRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	MethodID string  `json:"method_id" binding:"required"`
}

// WithdrawRequest asks for a payout to the given destination
type WithdrawRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Destination string  `json:"destination" binding:"required"`
}

// invalidateUserCaches drops the wallet and transaction-history cache
// entries for a user after a mutation (first pages only; the rest age
// out on TTL).
func invalidateUserCaches(c *gin.Context, userID string) {
	v, exists := c.Get("redisClient")
	if !exists {
		return
	}
	rdb, ok := v.(*redis.Client)
	if !ok {
		return
	}
	ctx := context.Background()
	_ = utils.DeleteCache(ctx, rdb, "wallet:user:"+userID)
	for i := 1; i <= 5; i++ {
		_ = utils.DeleteCache(ctx, rdb, "txhistory:user:"+userID+":page:"+strconv.Itoa(i)+":size:20")
	}
}

// GetWalletHandler returns the authenticated user's balances
func GetWalletHandler(state *core.State, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		ctx := context.Background()
		cacheKey := "wallet:user:" + userID
		var cached UserResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"user": cached, "cached": true})
			return
		}
		user, ok := state.FindByID(userID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		resp := toUserResponse(user)
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{"user": resp, "cached": false})
	}
}

// AdjustBalanceHandler applies a signed game settlement to the
// authenticated user's split balance. Debits consume bonus funds before
// real funds; stake validation against game limits is the game's job.
func AdjustBalanceHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		var req AdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		user, ok := state.ApplyDelta(userID, *req.Amount)
		if !ok {
			// The token holder is not the active session user.
			c.JSON(http.StatusConflict, gin.H{"error": "No active session for this user"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  *req.Amount,
			"type":    "adjust",
		}).Info("Balance adjustment applied")
		invalidateUserCaches(c, userID)
		c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
	}
}

// DepositHandler records a pending deposit request for admin review
func DepositHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		var req DepositRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, ok := state.FindByID(userID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		settings := state.Settings()
		if req.Amount < settings.MinDeposit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount below minimum deposit"})
			return
		}
		var method *domain.DepositMethod
		for i := range settings.DepositMethods {
			if settings.DepositMethods[i].ID == req.MethodID && settings.DepositMethods[i].Enabled {
				method = &settings.DepositMethods[i]
				break
			}
		}
		if method == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or disabled deposit method"})
			return
		}
		tx := state.CreateTransaction(core.TransactionFields{
			UserID:      user.ID,
			Username:    user.Username,
			Amount:      req.Amount,
			Kind:        domain.KindDeposit,
			Status:      domain.StatusPending,
			Destination: method.Name,
		})
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"amount":         req.Amount,
			"method":         method.Name,
			"transaction_id": tx.ID,
		}).Info("Deposit requested")
		invalidateUserCaches(c, userID)
		c.JSON(http.StatusCreated, gin.H{"transaction": tx})
	}
}

// WithdrawHandler debits the requested amount (bonus funds first) and
// records a pending withdrawal carrying the payout destination. The
// overdraft guard lives here, not in the ledger.
func WithdrawHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		var req WithdrawRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		settings := state.Settings()
		if req.Amount < settings.MinWithdrawal {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount below minimum withdrawal"})
			return
		}
		// Funds check and debit are one atomic step; two concurrent
		// withdrawals cannot both pass on the same balance.
		user, err := state.DebitIfCovered(userID, req.Amount)
		if errors.Is(err, core.ErrInsufficientFunds) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
			return
		}
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "No active session for this user"})
			return
		}
		fee := req.Amount * settings.WithdrawalFee / 100
		tx := state.CreateTransaction(core.TransactionFields{
			UserID:      user.ID,
			Username:    user.Username,
			Amount:      req.Amount - fee,
			Kind:        domain.KindWithdrawal,
			Status:      domain.StatusPending,
			Destination: req.Destination,
		})
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,
			"amount":         req.Amount,
			"fee":            fee,
			"transaction_id": tx.ID,
		}).Info("Withdrawal requested")
		invalidateUserCaches(c, userID)
		c.JSON(http.StatusCreated, gin.H{"transaction": tx, "fee": fee})
	}
}

// ClaimBonusHandler grants the one-time welcome bonus
func ClaimBonusHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		// The claim is bound to the token holder; if they are not the
		// active session user nothing is credited.
		user, err := state.ClaimFirstBonus(userID, welcomeBonus)
		if errors.Is(err, core.ErrBonusClaimed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Bonus already claimed"})
			return
		}
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "No active session for this user"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  welcomeBonus,
		}).Info("First bonus claimed")
		invalidateUserCaches(c, userID)
		c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
	}
}

// GetTransactionHistoryHandler returns the authenticated user's ledger
// entries, newest first
func GetTransactionHistoryHandler(state *core.State, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		page := 1
		pageSize := 20
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v
			}
		}
		cacheKey := "txhistory:user:" + userID + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := context.Background()
		var cached pagedTransactions
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		all := state.TransactionsFor(userID)
		resp := paginateTransactions(all, page, pageSize)
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// pagedTransactions is the shared paginated listing shape
type pagedTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int                  `json:"total"`
	TotalPages   int                  `json:"total_pages"`
	Cached       bool                 `json:"cached"`
}

func paginateTransactions(all []domain.Transaction, page, pageSize int) pagedTransactions {
	total := len(all)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	items := all[start:end]
	if items == nil {
		items = []domain.Transaction{}
	}
	return pagedTransactions{
		Transactions: items,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
		TotalPages:   totalPages,
	}
}
