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

// listParams returns the clamped page and page size from the query.
// Cache keys are derived from these parsed values, never the raw query
// strings, so malformed input shares the page it is actually served.
func listParams(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
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
	return page, pageSize
}

func adminUsersCacheKey(page, pageSize int) string {
	return "admin:users:page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
}

func adminTxsCacheKey(userID, kind, status string, page, pageSize int) string {
	return "admin:txs:user_id=" + userID + ":type=" + kind + ":status=" + status +
		":page=" + strconv.Itoa(page) + ":page_size=" + strconv.Itoa(pageSize)
}

// ListUsersHandler returns the full roster with balances
func ListUsersHandler(state *core.State, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		page, pageSize := listParams(c)
		cacheKey := adminUsersCacheKey(page, pageSize)
		var cached struct {
			Users      []UserResponse `json:"users"`
			Page       int            `json:"page"`
			PageSize   int            `json:"page_size"`
			Total      int            `json:"total"`
			TotalPages int            `json:"total_pages"`
		}
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":       cached.Users,
				"page":        cached.Page,
				"page_size":   cached.PageSize,
				"total":       cached.Total,
				"total_pages": cached.TotalPages,
				"cached":      true,
			})
			return
		}
		users := state.Users()
		total := len(users)
		totalPages := (total + pageSize - 1) / pageSize
		start := (page - 1) * pageSize
		if start > total {
			start = total
		}
		end := start + pageSize
		if end > total {
			end = total
		}
		resp := make([]UserResponse, 0, end-start)
		for _, u := range users[start:end] {
			resp = append(resp, toUserResponse(u))
		}
		respData := gin.H{
			"users":       resp,
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
			"cached":      false,
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData)
	}
}

// UpdateUserHandler overwrites a roster record the admin just read.
// Balance edits, role changes and referral corrections all go through
// this single replacement path.
func UpdateUserHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		existing, ok := state.FindByID(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var user domain.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Identity and credential are not editable through this path.
		user.ID = existing.ID
		user.Password = existing.Password
		state.Replace(user)
		logrus.WithFields(logrus.Fields{
			"user_id":       user.ID,
			"balance":       user.Balance,
			"bonus_balance": user.BonusBalance,
		}).Info("User record replaced by admin")
		invalidateUserCaches(c, user.ID)
		c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
	}
}

// ListTransactionsHandler returns the full ledger with optional
// filtering by user, kind or status
func ListTransactionsHandler(state *core.State, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		page, pageSize := listParams(c)
		userID := c.Query("user_id")
		kind := c.Query("type")
		status := c.Query("status")
		cacheKey := adminTxsCacheKey(userID, kind, status, page, pageSize)
		var cached pagedTransactions
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		var filtered []domain.Transaction
		for _, t := range state.Transactions() {
			if userID != "" && t.UserID != userID {
				continue
			}
			if kind != "" && t.Kind != kind {
				continue
			}
			if status != "" && t.Status != status {
				continue
			}
			filtered = append(filtered, t)
		}
		resp := paginateTransactions(filtered, page, pageSize)
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		c.JSON(http.StatusOK, resp)
	}
}

// StatusUpdateRequest carries the reviewed status for a pending
// transaction
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTransactionStatusHandler is the administrative review step:
// pending transactions move to completed or rejected, terminal ones
// stay put
func UpdateTransactionStatusHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req StatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		err := state.SetStatus(id, req.Status)
		switch {
		case errors.Is(err, core.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		case errors.Is(err, core.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		case errors.Is(err, core.ErrTerminalStatus):
			c.JSON(http.StatusConflict, gin.H{"error": "Transaction already finalized"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"transaction_id": id,
			"status":         req.Status,
		}).Info("Transaction reviewed")
		c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
	}
}

// UpdateSettingsHandler replaces the configuration wholesale; the admin
// UI decides what merged state to submit
func UpdateSettingsHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings domain.AdminSettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings"})
			return
		}
		state.ReplaceSettings(settings)
		c.JSON(http.StatusOK, gin.H{"settings": state.Settings()})
	}
}
