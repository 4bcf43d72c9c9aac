package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/HovVathana/shoppink-backend/config"
	"github.com/HovVathana/shoppink-backend/internal/app/controller"
	"github.com/HovVathana/shoppink-backend/internal/middleware"
	"github.com/HovVathana/shoppink-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

// Router assembles the HTTP surface from the controllers.
type Router struct {
	cfg      *config.Config
	auth     *controller.AuthController
	products *controller.ProductController
	catalog  *controller.CatalogController
	cart     *controller.CartController
	orders   *controller.OrderController
	drivers  *controller.DriverController
	staff    *controller.StaffController
	uploads  *controller.UploadController
	hub      *websocket.Hub
}

func New(
	cfg *config.Config,
	auth *controller.AuthController,
	products *controller.ProductController,
	catalog *controller.CatalogController,
	cart *controller.CartController,
	orders *controller.OrderController,
	drivers *controller.DriverController,
	staff *controller.StaffController,
	uploads *controller.UploadController,
	hub *websocket.Hub,
) *Router {
	return &Router{
		cfg:      cfg,
		auth:     auth,
		products: products,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		drivers:  drivers,
		staff:    staff,
		uploads:  uploads,
		hub:      hub,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.cfg.Server.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(corsMiddleware(r.cfg.CORS.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	api := engine.Group("/api/v1")
	requireAuth := middleware.RequireAuth(&r.cfg.JWT)

	auth := api.Group("/auth")
	{
		auth.POST("/register", r.auth.Register)
		auth.POST("/login", r.auth.Login)
		auth.POST("/refresh", r.auth.Refresh)
		auth.POST("/logout", requireAuth, r.auth.Logout)
		auth.GET("/me", requireAuth, r.auth.GetProfile)
		auth.PUT("/me", requireAuth, r.auth.UpdateProfile)
	}

	products := api.Group("/products")
	{
		products.GET("", r.products.ListProducts)
		products.GET("/:id", r.products.GetProduct)
		products.POST("/:id/quote", r.products.QuoteSelection)
		products.GET("/:id/groups/:groupId/options/:optionId/availability", r.products.GetOptionAvailability)
	}

	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", r.cart.GetCart)
		cart.DELETE("", r.cart.ClearCart)
		cart.POST("/items", r.cart.AddToCart)
		cart.PUT("/items/:itemId", r.cart.UpdateQuantity)
		cart.DELETE("/items/:itemId", r.cart.RemoveItem)
	}

	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", r.orders.Checkout)
		orders.GET("", r.orders.GetMyOrders)
		orders.GET("/:id", r.orders.GetMyOrder)
		orders.POST("/:id/cancel", r.orders.CancelMyOrder)
	}

	admin := api.Group("/admin", requireAuth, middleware.RequireOperator())
	{
		admin.GET("/ws", websocket.ServeWS(r.hub))

		admin.POST("/products", r.products.CreateProduct)
		admin.PUT("/products/:id", r.products.UpdateProduct)
		admin.DELETE("/products/:id", r.products.DeleteProduct)
		admin.GET("/products/:id/stock-summary", r.products.GetStockSummary)
		admin.GET("/products/:id/allocations", r.catalog.AuditAllocations)
		admin.GET("/allocations/report", r.catalog.GetAllocationReport)

		admin.GET("/products/:id/groups", r.catalog.GetGroupTree)
		admin.POST("/products/:id/groups", r.catalog.CreateGroup)
		admin.PUT("/groups/:groupId", r.catalog.UpdateGroup)
		admin.DELETE("/groups/:groupId", r.catalog.DeleteGroup)

		admin.POST("/groups/:groupId/options", r.catalog.CreateOption)
		admin.PUT("/options/:optionId", r.catalog.UpdateOption)
		admin.DELETE("/options/:optionId", r.catalog.DeleteOption)
		admin.PATCH("/options/:optionId/stock", r.catalog.AdjustOptionStock)

		admin.GET("/products/:id/variants", r.catalog.ListVariants)
		admin.POST("/products/:id/variants", r.catalog.CreateVariant)
		admin.PUT("/variants/:variantId", r.catalog.UpdateVariant)
		admin.DELETE("/variants/:variantId", r.catalog.DeleteVariant)

		admin.GET("/orders", r.orders.ListOrders)
		admin.GET("/orders/dashboard", r.orders.Dashboard)
		admin.GET("/orders/:id", r.orders.GetOrder)
		admin.PATCH("/orders/:id/status", r.orders.UpdateStatus)
		admin.PATCH("/orders/:id/driver", r.orders.AssignDriver)
		admin.PATCH("/orders/:id/paid", r.orders.MarkPaid)

		admin.GET("/drivers", r.drivers.ListDrivers)
		admin.POST("/drivers", r.drivers.CreateDriver)
		admin.PUT("/drivers/:driverId", r.drivers.UpdateDriver)
		admin.DELETE("/drivers/:driverId", r.drivers.DeleteDriver)

		admin.POST("/uploads/presign", r.uploads.PresignUpload)

		staff := admin.Group("/staff", middleware.RequireAdmin())
		{
			staff.GET("", r.staff.ListStaff)
			staff.POST("", r.staff.CreateStaff)
			staff.PATCH("/:staffId/active", r.staff.SetActive)
			staff.DELETE("/:staffId", r.staff.RemoveStaff)
		}
	}

	return engine
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range allowedOrigins {
			if allowed == "*" || strings.EqualFold(allowed, origin) {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				break
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
