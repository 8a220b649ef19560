package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmed2844ah-star/bokogaming/internal/core"
)

// GetSettingsHandler exposes the configuration snapshot read-only to
// games and the wallet view
func GetSettingsHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"settings": state.Settings()})
	}
}

// ThemeRequest carries the preferred theme
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=dark light"`
}

// GetThemeHandler returns the persisted theme preference
func GetThemeHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"theme": state.Theme()})
	}
}

// SetThemeHandler stores the theme preference write-through
func SetThemeHandler(state *core.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ThemeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Theme must be dark or light"})
			return
		}
		state.SetTheme(req.Theme)
		c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
	}
}
