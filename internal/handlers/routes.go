package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
)

// Routes groups the handlers mounted by RegisterRoutes.
type Routes struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Transfer   *TransferHandler
	Widget     *WidgetHandler
	Storefront *StorefrontHandler
	Cart       *CartHandler
	Voice      *VoiceHandler

	Tokens      middleware.TokenParser
	AuthLimiter *middleware.RateLimiter
}

// RegisterRoutes mounts the health probes and the /api/v1 tree.
func RegisterRoutes(router *gin.Engine, r Routes) {
	router.GET("/health", r.Health.Health)
	router.GET("/ready", r.Health.Ready)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	if r.AuthLimiter != nil {
		auth.Use(r.AuthLimiter.Middleware())
	}
	{
		auth.POST("/signup", r.Auth.Signup)
		auth.POST("/login", r.Auth.Login)
	}

	// Merchant admin, authenticated by session token
	admin := v1.Group("")
	admin.Use(middleware.AuthMiddleware(r.Tokens))
	{
		admin.GET("/merchant/profile", r.Auth.GetProfile)
		admin.PUT("/merchant/profile", r.Auth.UpdateProfile)

		categories := admin.Group("/categories")
		{
			categories.GET("", r.Catalog.ListCategories)
			categories.POST("", r.Catalog.CreateCategory)
			categories.PUT("/:id", r.Catalog.UpdateCategory)
			categories.DELETE("/:id", r.Catalog.DeleteCategory)
		}

		subCategories := admin.Group("/subcategories")
		{
			subCategories.GET("", r.Catalog.ListSubCategories)
			subCategories.POST("", r.Catalog.CreateSubCategory)
			subCategories.PUT("/:id", r.Catalog.UpdateSubCategory)
			subCategories.DELETE("/:id", r.Catalog.DeleteSubCategory)
		}

		products := admin.Group("/products")
		{
			products.GET("", r.Catalog.ListProducts)
			products.POST("", r.Catalog.CreateProduct)
			products.PUT("/:id", r.Catalog.UpdateProduct)
			products.DELETE("/:id", r.Catalog.DeleteProduct)
		}

		transfer := admin.Group("/catalog")
		{
			transfer.GET("/export", r.Transfer.ExportCatalog)
			transfer.POST("/import", r.Transfer.ImportProducts)
			transfer.GET("/import/template", r.Transfer.GetImportTemplate)
		}

		admin.GET("/widget", r.Widget.GetConfig)
		admin.PUT("/widget", r.Widget.UpdateConfig)
		admin.GET("/widget/snippet", r.Widget.GetSnippet)
	}

	// Public storefront, scoped by X-Merchant-ID
	store := v1.Group("/storefront")
	store.Use(middleware.MerchantMiddleware())
	{
		store.GET("/categories", r.Storefront.GetCategories)
		store.GET("/categories/:id/subcategories", r.Storefront.GetSubCategories)
		store.GET("/categories/:id/products", r.Storefront.GetProducts)
		store.GET("/products/:id", r.Storefront.GetProduct)

		store.GET("/cart", r.Cart.GetCart)
		store.POST("/cart/items", r.Cart.AddItem)
		store.PUT("/cart/items", r.Cart.UpdateItem)
		store.DELETE("/cart/items", r.Cart.RemoveItem)
		store.DELETE("/cart", r.Cart.ClearCart)

		store.POST("/voice/start", r.Voice.Start)
		store.POST("/voice/stop", r.Voice.Stop)
		store.POST("/voice/refresh", r.Voice.Refresh)
		store.GET("/voice/status", r.Voice.Status)
		store.GET("/voice/status/stream", r.Voice.StatusStream)
	}
}
