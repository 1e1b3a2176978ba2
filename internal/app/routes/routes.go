package routes

import (
	_ "github.com/Anandha-scraper/HarvestChain/docs"
	"github.com/Anandha-scraper/HarvestChain/internal/app/controllers"
	"github.com/Anandha-scraper/HarvestChain/internal/app/middleware"
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services/container"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter initializes and returns the configured engine
func SetupRouter(pool *database.ConnectionPool, cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// CORS is intentionally wide open; the public scanner UI calls these
	// routes from arbitrary origins
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	})

	serviceContainer := container.NewServiceContainer(pool, cfg)
	middleware.InitAuthMiddleware(cfg)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")

	// Health routes stay reachable while the store is down
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	registerFarmerRoutes(api, container)
	registerAdminRoutes(api, container)
}

// registerFarmerRoutes configures the public farmer routes. None of them
// require a bearer token; scanners and the registration flow call them
// directly.
func registerFarmerRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	farmers := api.Group("/farmers")
	farmers.Use(middleware.RequireDatabase(container.GetPool()))

	farmers.POST("/create", controllers.HandleFarmerFunc(container, "createFarmer"))
	farmers.GET("/firebase/:uid", controllers.HandleFarmerFunc(container, "getFarmerByFirebaseUID"))
	farmers.GET("/phone/:phoneNumber", controllers.HandleFarmerFunc(container, "getFarmerByPhone"))
	farmers.POST("/login", controllers.HandleFarmerFunc(container, "login"))
	farmers.PUT("/update/:uid", controllers.HandleFarmerFunc(container, "updateFarmer"))
	farmers.PUT("/crops/:id", controllers.HandleFarmerFunc(container, "updateCrops"))
	farmers.DELETE("/delete/:uid", controllers.HandleFarmerFunc(container, "deleteFarmer"))
	farmers.GET("/all", controllers.HandleFarmerFunc(container, "getAllFarmers"))
	farmers.GET("/exists/:uid", controllers.HandleFarmerFunc(container, "farmerExists"))
	farmers.GET("/stats", controllers.HandleFarmerFunc(container, "getFarmerStats"))
}

// registerAdminRoutes configures the admin routes. Everything registered
// after the Authentication middleware requires a valid bearer token.
func registerAdminRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireDatabase(container.GetPool()))

	// Bootstrap and login are reachable without a token
	admin.POST("/init-master", controllers.HandleAdminFunc(container, "initMaster"))
	admin.POST("/init-master/custom", controllers.HandleAdminFunc(container, "initMasterCustom"))
	admin.POST("/init-db", controllers.HandleAdminFunc(container, "initDB"))
	admin.POST("/login", controllers.HandleAdminFunc(container, "login"))

	// Protected routes below this line
	protected := admin.Group("/")
	protected.Use(middleware.Authentication())

	protected.GET("/farmers", controllers.HandleAdminFunc(container, "getFarmers"))
	protected.GET("/farmers/:id", controllers.HandleAdminFunc(container, "getFarmer"))
	protected.PUT("/farmers/:id", controllers.HandleAdminFunc(container, "updateFarmer"))
	protected.DELETE("/farmers/:id", controllers.HandleAdminFunc(container, "deleteFarmer"))
	protected.GET("/stats", controllers.HandleAdminFunc(container, "getStats"))
	protected.PUT("/credentials", controllers.HandleAdminFunc(container, "updateCredentials"))
}
