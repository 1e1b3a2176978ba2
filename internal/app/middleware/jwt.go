package middleware

import (
	"strings"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/services"
	"github.com/Anandha-scraper/HarvestChain/internal/error/code"
	"github.com/Anandha-scraper/HarvestChain/internal/error/response"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware initializes the token service used by the auth gate
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// Authentication gates every route registered after it behind a valid admin
// bearer token. On success the decoded admin ID and role are attached to the
// request context; malformed, expired, and wrongly-signed tokens are all
// rejected with the same 401 so nothing about the token state leaks.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Missing authorization token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Missing authorization token")
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Fail(c, code.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
