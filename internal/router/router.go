package router

import (
	"time"

	"veloservice/internal/config"
	"veloservice/internal/handler"
	"veloservice/internal/infra"
	"veloservice/internal/middleware"
	"veloservice/internal/repository"
	"veloservice/internal/service"
	"veloservice/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	storage := infra.NewFileStorage(cfg.UploadStoragePath)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	centerRepo := repository.NewServiceCenterRepository(db)
	productRepo := repository.NewProductRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	workshopRepo := repository.NewWorkshopServiceRepository(db)
	priceListRepo := repository.NewPriceListRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	requestRepo := repository.NewServiceRequestRepository(db)
	warrantyRepo := repository.NewWarrantyRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, centerRepo, cfg.JWTSecret, cfg.JWTExpirationHours, cfg.JWTRefreshHours)
	centerSvc := service.NewServiceCenterService(centerRepo)
	productSvc := service.NewProductService(productRepo)
	componentSvc := service.NewComponentService(componentRepo)
	workshopSvc := service.NewWorkshopServiceService(workshopRepo, componentRepo)

	resolver := service.NewItemResolver(workshopRepo, componentRepo, productRepo)
	priceListSvc := service.NewPriceListService(priceListRepo, resolver)

	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, dispatcher)
	requestSvc := service.NewServiceRequestService(requestRepo, centerRepo, workshopRepo, dispatcher)
	warrantySvc := service.NewWarrantyService(warrantyRepo, requestRepo, dispatcher)
	reviewSvc := service.NewReviewService(reviewRepo, centerRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	centersH := handler.NewServiceCentersHandler(centerSvc, priceListSvc, reviewSvc, storage, rdb)
	productsH := handler.NewProductsHandler(productSvc, storage)
	componentsH := handler.NewComponentsHandler(componentSvc)
	workshopH := handler.NewWorkshopServicesHandler(workshopSvc)
	priceListsH := handler.NewPriceListsHandler(priceListSvc, rdb)
	cartH := handler.NewCartHandler(cartSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	requestsH := handler.NewServiceRequestsHandler(requestSvc)
	warrantiesH := handler.NewWarrantiesHandler(warrantySvc)
	reviewsH := handler.NewReviewsHandler(reviewSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Static uploads (product images, logos)
	r.Static("/uploads", storage.Dir())

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/users/register", authH.RegisterUser)
		auth.POST("/users/login", middleware.LoginRateLimiter(), authH.LoginUser)
		auth.POST("/service-centers/register", authH.RegisterCenter)
		auth.POST("/service-centers/login", middleware.LoginRateLimiter(), authH.LoginCenter)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public storefront — no auth required
	r.GET("/v1/service-centers", centersH.List)
	r.GET("/v1/service-centers/:id", centersH.Get)
	r.GET("/v1/service-centers/:id/reviews", centersH.Reviews)
	r.GET("/v1/service-centers/:id/price-list", centersH.DefaultPriceList)
	r.GET("/v1/products", productsH.List)
	r.GET("/v1/products/:id", productsH.Get)
	r.GET("/v1/workshop-services", workshopH.List)
	r.GET("/v1/workshop-services/:id", workshopH.Get)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		// Both principal types: orders and service requests (scoping per claims)
		v1.GET("/orders", ordersH.List)
		v1.GET("/orders/:id", ordersH.Get)
		v1.GET("/service-requests", requestsH.List)
		v1.GET("/service-requests/:id", requestsH.Get)

		// Customer side
		user := v1.Group("", middleware.RequireUser())
		{
			user.GET("/cart", cartH.Get)
			user.DELETE("/cart", cartH.Clear)
			user.POST("/cart/items", cartH.AddItem)
			user.PUT("/cart/items/:id", cartH.UpdateItem)
			user.DELETE("/cart/items/:id", cartH.RemoveItem)

			user.POST("/orders", ordersH.Create)

			user.POST("/service-requests", requestsH.Create)
			user.PUT("/service-requests/:id", requestsH.Update)

			user.POST("/reviews", reviewsH.Create)
			user.PUT("/reviews/:id", reviewsH.Update)
			user.DELETE("/reviews/:id", reviewsH.Delete)
		}

		// Service center side
		center := v1.Group("", middleware.RequireServiceCenter())
		{
			center.PUT("/profile", centersH.UpdateProfile)
			center.POST("/profile/logo", centersH.UploadLogo)

			center.POST("/products", productsH.Create)
			center.PUT("/products/:id", productsH.Update)
			center.DELETE("/products/:id", productsH.Delete)
			center.POST("/products/:id/image", productsH.UploadImage)

			center.GET("/components", componentsH.List)
			center.GET("/components/:id", componentsH.Get)
			center.POST("/components", componentsH.Create)
			center.PUT("/components/:id", componentsH.Update)
			center.DELETE("/components/:id", componentsH.Delete)

			center.POST("/workshop-services", workshopH.Create)
			center.PUT("/workshop-services/:id", workshopH.Update)
			center.DELETE("/workshop-services/:id", workshopH.Delete)

			center.GET("/price-lists", priceListsH.List)
			center.GET("/price-lists/:id", priceListsH.Get)
			center.POST("/price-lists", priceListsH.Create)
			center.PUT("/price-lists/:id", priceListsH.Update)
			center.DELETE("/price-lists/:id", priceListsH.Delete)

			center.PUT("/orders/:id/status", ordersH.UpdateStatus)
			center.PUT("/service-requests/:id/status", requestsH.UpdateStatus)

			center.GET("/warranties", warrantiesH.List)
			center.GET("/warranties/:id", warrantiesH.Get)
			center.POST("/warranties", warrantiesH.Create)
			center.PUT("/warranties/:id", warrantiesH.Update)
			center.DELETE("/warranties/:id", warrantiesH.Delete)
			center.POST("/warranties/:id/certificate", warrantiesH.GenerateCertificate)
			center.GET("/warranties/:id/certificate", warrantiesH.DownloadCertificate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
