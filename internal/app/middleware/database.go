package middleware

import (
	"github.com/Anandha-scraper/HarvestChain/internal/error/code"
	"github.com/Anandha-scraper/HarvestChain/internal/error/response"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/database"
	"github.com/Anandha-scraper/HarvestChain/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequireDatabase verifies the store connection before a handler runs,
// reconnecting lazily at most once. A request hitting an unavailable store
// gets a 503 envelope immediately; there is no further retrying or queueing.
func RequireDatabase(pool *database.ConnectionPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pool.Ensure(c.Request.Context()); err != nil {
			logger.Error("Database unavailable: %v", err)
			response.Fail(c, code.ErrDatabaseUnavailable)
			c.Abort()
			return
		}
		c.Next()
	}
}
