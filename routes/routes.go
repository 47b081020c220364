package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/controllers"
	"github.com/nassimidr/Emall/middleware"
	"github.com/nassimidr/Emall/services"
)

type Controllers struct {
	Auth    *controllers.AuthController
	Mall    *controllers.MallController
	Shop    *controllers.ShopController
	Product *controllers.ProductController
	Review  *controllers.ReviewController
	Search  *controllers.SearchController
}

// Register mounts the API under /api. Mall and shop writes are limited
// to admins; product reads, restock subscriptions and search stay open.
func Register(r *gin.Engine, ctrl Controllers, tokens *services.TokenService) {
	api := r.Group("/api")

	authed := middleware.Auth(tokens)
	adminOnly := middleware.RequireRole("admin")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.GET("/profile", authed, ctrl.Auth.GetProfile)
		auth.PUT("/profile", authed, ctrl.Auth.UpdateProfile)
	}

	malls := api.Group("/malls")
	{
		malls.GET("", ctrl.Mall.GetMalls)
		malls.GET("/:id", ctrl.Mall.GetMallByID)
		malls.GET("/:id/shops", ctrl.Shop.GetShopsByMall)
		malls.POST("", authed, adminOnly, ctrl.Mall.CreateMall)
		malls.PUT("/:id", authed, adminOnly, ctrl.Mall.UpdateMall)
		malls.DELETE("/:id", authed, adminOnly, ctrl.Mall.DeleteMall)
	}

	shops := api.Group("/shops")
	{
		shops.GET("", ctrl.Shop.GetShops)
		shops.GET("/:id", ctrl.Shop.GetShopByID)
		shops.GET("/mall/:mallId", ctrl.Shop.GetShopsByMall)
		shops.GET("/name/:name", ctrl.Shop.GetShopByName)
		shops.GET("/:id/products", ctrl.Product.GetProductsByShop)
		shops.POST("", authed, adminOnly, ctrl.Shop.CreateShop)
		shops.PUT("/:id", authed, adminOnly, ctrl.Shop.UpdateShop)
		shops.DELETE("/:id", authed, adminOnly, ctrl.Shop.DeleteShop)
	}

	products := api.Group("/products")
	{
		products.GET("", ctrl.Product.GetProducts)
		products.GET("/:id", ctrl.Product.GetProductByID)
		products.GET("/shop/:shopId", ctrl.Product.GetProductsByShop)
		products.POST("", ctrl.Product.CreateProduct)
		products.PUT("/:id", ctrl.Product.UpdateProduct)
		products.DELETE("/:id", ctrl.Product.DeleteProduct)
		products.POST("/:id/notify-when-in-stock", ctrl.Product.Subscribe)
		products.GET("/:id/notifications", authed, adminOnly, ctrl.Product.GetNotifications)

		products.GET("/:id/reviews", ctrl.Review.GetReviews)
		products.POST("/:id/reviews", authed, ctrl.Review.CreateReview)
	}

	api.GET("/search", ctrl.Search.Search)
}
