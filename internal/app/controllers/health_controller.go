package controllers

import (
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services/container"
	"github.com/Anandha-scraper/HarvestChain/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthController reports service and store connectivity
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController creates a new health controller
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler dispatching to the named method
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			controller.Ping()
		}
	}
}

// Ping is the liveness endpoint
func (c *HealthController) Ping() {
	response.Success(c.Ctx, "pong", gin.H{"status": "healthy"})
}

// Status reports the database connection state and pool statistics
func (c *HealthController) Status() {
	pool := c.Container.GetPool()

	status := gin.H{
		"database": string(pool.State()),
	}
	if err := pool.HealthCheck(); err != nil {
		status["database"] = string(pool.State())
		status["error"] = err.Error()
	}
	if stats, err := pool.Stats(); err == nil {
		status["pool"] = stats
	}

	response.Success(c.Ctx, "", status)
}
