package container

import (
	"sync"

	"github.com/Anandha-scraper/HarvestChain/internal/domain/services"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/database"
)

// ServiceContainer wires the services and their shared dependencies
type ServiceContainer struct {
	pool   *database.ConnectionPool
	config *config.Config

	jwtService    services.InterfaceJWTService
	farmerService services.InterfaceFarmerService
	adminService  services.InterfaceAdminService
	initService   services.InterfaceInitService

	mu sync.RWMutex
}

// NewServiceContainer creates the container and initializes every service
func NewServiceContainer(pool *database.ConnectionPool, cfg *config.Config) *ServiceContainer {
	if pool == nil {
		panic("database connection pool is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}

	container := &ServiceContainer{
		pool:   pool,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices constructs the service graph
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.pool.GetDB()

	c.jwtService = services.NewJWTService(c.config)
	c.farmerService = services.NewFarmerService(db, c.config)
	c.adminService = services.NewAdminService(db, c.config, c.farmerService)
	c.initService = services.NewInitService(db)
}

// GetService returns the named service
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "pool":
		return c.pool
	case "jwt":
		return c.jwtService
	case "farmer":
		return c.farmerService
	case "admin":
		return c.adminService
	case "init":
		return c.initService
	default:
		return nil
	}
}

// GetPool returns the shared connection pool
func (c *ServiceContainer) GetPool() *database.ConnectionPool {
	return c.pool
}

// GetConfig returns the shared configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}
