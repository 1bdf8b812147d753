package users_middleware

import (
	"net/http"
	"strings"

	users_models "taskhive-backend/internal/features/users/models"
	users_services "taskhive-backend/internal/features/users/services"

	"github.com/gin-gonic/gin"
)

const userContextKey = "authenticatedUser"

// AuthMiddleware resolves the bearer token into a user and aborts with
// 401 when the credential is missing or invalid.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			ctx.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "No token provided"},
			)
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok
}
