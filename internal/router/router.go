package router

import (
	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/config"
	"github.com/qkart/storefront/internal/app/controller"
	"github.com/qkart/storefront/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	searchController   *controller.SearchController
	cartController     *controller.CartController
	addressController  *controller.AddressController
	checkoutController *controller.CheckoutController
	sessionMiddleware  *middleware.SessionMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	searchController *controller.SearchController,
	cartController *controller.CartController,
	addressController *controller.AddressController,
	checkoutController *controller.CheckoutController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		searchController:   searchController,
		cartController:     cartController,
		addressController:  addressController,
		checkoutController: checkoutController,
		sessionMiddleware:  sessionMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(r.sessionMiddleware.Load())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "QKart storefront is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
		}

		search := v1.Group("/search")
		{
			search.GET("", r.searchController.State)
			search.POST("", r.searchController.Submit)
			search.POST("/input", r.searchController.Input)
		}

		cart := v1.Group("/cart")
		cart.Use(r.sessionMiddleware.RequireSession())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items", r.cartController.UpdateItem)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.sessionMiddleware.RequireSession())
		{
			addresses.GET("", r.addressController.ListAddresses)
			addresses.POST("", r.addressController.AddAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
			addresses.PUT("/selected", r.addressController.SelectAddress)
		}

		checkout := v1.Group("/checkout")
		checkout.Use(r.sessionMiddleware.RequireSession())
		{
			checkout.POST("", r.checkoutController.PlaceOrder)
		}
	}

	return router
}
