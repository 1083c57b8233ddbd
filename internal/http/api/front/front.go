package front

import (
	"net/http"
	"strings"

	"github.com/brandbridge/bridgeboard/internal/bridge"
	"github.com/brandbridge/bridgeboard/internal/config"
	"github.com/brandbridge/bridgeboard/internal/http/api/front/handlers"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/brandbridge/bridgeboard/internal/security"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers public and authenticated front-end routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, svc *bridge.Service) {
	if r == nil || db == nil || svc == nil {
		return
	}

	r.GET("/healthz", handlers.NewHealthHandler(db).Healthz)

	front := r.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	front.POST("/auth/register", authHandler.Register)
	front.POST("/auth/login", authHandler.Login)
	front.GET("/config", handlers.GetPublicConfig)

	authed := front.Group("")
	authed.Use(userAuthMiddleware(db, jwtCfg))

	profileHandler := handlers.NewProfileHandler(db)
	authed.GET("/profile", profileHandler.Get)
	authed.PUT("/profile/password", profileHandler.ChangePassword)

	bridgeHandler := handlers.NewBridgeHandler(svc)
	authed.GET("/bridges", bridgeHandler.List)
	authed.POST("/bridges", bridgeHandler.Create)
	authed.GET("/bridges/:id", bridgeHandler.Get)
	authed.PUT("/bridges/:id", bridgeHandler.UpdateName)
	authed.PUT("/bridges/:id/name", bridgeHandler.UpdateName)
	authed.PUT("/bridges/:id/slug", bridgeHandler.UpdateSlug)
	authed.DELETE("/bridges/:id", bridgeHandler.Delete)

	authed.POST("/bridges/:id/colors", bridgeHandler.AddColor)
	authed.PUT("/bridges/:id/colors/order", bridgeHandler.ReorderColors)
	authed.DELETE("/bridges/:id/colors/:colorId", bridgeHandler.DeleteColor)
}

// userAuthMiddleware validates user JWTs and loads the user into context.
func userAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "empty token"})
			return
		}

		claims, errJWT := security.ParseToken(jwtCfg.Secret, token)
		if errJWT != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if user.Disabled {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user disabled"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
