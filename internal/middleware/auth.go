package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/pkg/jwt"
	"github.com/techblog/core/internal/pkg/response"
	"gorm.io/gorm"
)

const contextKeyUser = "current_user"

// Auth returns a middleware that enforces JWT authentication and loads the
// authenticated user as the request actor.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// OptionalAuth loads the actor if a valid token is present, but does not block
// anonymous requests. Read paths use this to personalize responses.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(db, extractToken(c)); err == nil {
			c.Set(contextKeyUser, user)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose actor does not hold the elevated role.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := CurrentUser(c); !user.IsAdmin() {
			response.Forbidden(c, "admin role required")
			return
		}
		c.Next()
	}
}

// CurrentUser extracts the authenticated actor from context; nil if anonymous.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.UserModel)
	return user
}

func resolveUser(db *gorm.DB, rawToken string) (*models.UserModel, error) {
	token := normalizeToken(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return auth
	}
	return c.Query("token")
}

// normalizeToken trims spaces and strips the optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
