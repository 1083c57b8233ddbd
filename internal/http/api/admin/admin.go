package admin

import (
	"net/http"
	"strings"

	"github.com/brandbridge/bridgeboard/internal/config"
	"github.com/brandbridge/bridgeboard/internal/http/api/admin/handlers"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/security"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers the admin API. Every route requires a user with IsAdmin set.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig) {
	if r == nil || db == nil {
		return
	}

	group := r.Group("/api/v1/admin")
	group.Use(adminAuthMiddleware(db, jwtCfg))

	userHandler := handlers.NewUserHandler(db)
	group.GET("/users", userHandler.List)
	group.POST("/users/:id/disable", userHandler.Disable)
	group.POST("/users/:id/enable", userHandler.Enable)

	settingHandler := handlers.NewSettingHandler(db)
	group.GET("/settings", settingHandler.List)
	group.PUT("/settings/:key", settingHandler.Put)
}

// adminAuthMiddleware validates the JWT and requires an enabled admin user.
func adminAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).Select("id", "disabled", "is_admin").First(&user, claims.UserID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin not found"})
			return
		}
		if user.Disabled || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}

		c.Set("adminID", user.ID)
		c.Next()
	}
}
