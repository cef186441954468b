package http

import (
	"errors"
	"net/http"
	"strings"

	"campusnet/internal/entity"
	"campusnet/internal/repo/persistent"
	"campusnet/pkg/jwt"
	"campusnet/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// AuthMiddleware verifies the bearer token and resolves it to a live user
// record. A missing or malformed header is a 401; a token that fails
// verification is a 400 (the client sent credentials, they just don't check
// out); a token whose user has since vanished is a 404.
func AuthMiddleware(jwtService *jwt.Service, userRepo persistent.UserRepository, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if jwt.IsExpired(err) {
				log.Info("Rejected expired token for request %s", c.Request.URL.Path)
			} else {
				log.Warn("Rejected invalid token for request %s: %v", c.Request.URL.Path, err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token."})
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			} else {
				log.Error("Failed to resolve user %s: %v", claims.UserID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		user.Password = ""
		c.Set("user_id", user.ID)
		c.Set("user_role", string(user.Role))
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// AdminMiddleware requires the resolved user's role to be admin. It must run
// after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if user.Role != entity.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Admin access required."})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
