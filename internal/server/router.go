package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	cartH "github.com/fekuna/omnipos-storefront/internal/cart/handler"
	deptH "github.com/fekuna/omnipos-storefront/internal/department/handler"
	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	userH "github.com/fekuna/omnipos-storefront/internal/user/handler"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User       *userH.UserHandler
	Department *deptH.DepartmentHandler
	Product    *prodH.ProductHandler
	Cart       *cartH.CartHandler
	Order      *orderH.OrderHandler
}

type RouterConfig struct {
	CORSOrigins []string
}

func NewRouter(h *Handlers, tokens auth.TokenMaker, cfg RouterConfig, log logger.ZapLogger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(log), RequestLogger(log))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Storefront API is running"})
	})

	gate := AccessGate(tokens)

	// Public catalog
	r.GET("/departments", h.Department.List)
	r.GET("/products", h.Product.List)
	r.GET("/products/:id", h.Product.Get)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.GET("/me", gate, h.User.Me)
	}

	admin := r.Group("/admin", gate, RequireAdmin())
	{
		admin.POST("/departments", h.Department.Create)
		admin.PUT("/departments/:id", h.Department.Update)
		admin.DELETE("/departments/:id", h.Department.Delete)

		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
	}

	cart := r.Group("/cart", gate)
	{
		cart.GET("", h.Cart.Get)
		cart.POST("", h.Cart.Add)
		cart.DELETE("", h.Cart.Clear)
		cart.PUT("/:id", h.Cart.Update)
		cart.DELETE("/:id", h.Cart.Remove)
	}

	orders := r.Group("/orders", gate)
	{
		orders.POST("/checkout", h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:code", h.Order.Get)
	}

	return r
}
