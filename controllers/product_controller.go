package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/services"
	"go.mongodb.org/mongo-driver/bson"
)

type NotifyRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ProductController struct {
	service services.ProductService
	cache   *CacheManager
}

func NewProductController(service services.ProductService, cache *CacheManager) *ProductController {
	return &ProductController{service: service, cache: cache}
}

func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := pc.cache.GetProductList(ctx, "all"); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := pc.service.List(ctx)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.SetProductListAsync("all", products)
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) GetProductByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if cached, ok := pc.cache.GetProduct(ctx, id); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := pc.service.Get(ctx, id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.SetProductAsync(id, product)
	c.JSON(http.StatusOK, product)
}

// GetProductsByShop is mounted both as /products/shop/:shopId and as the
// nested /shops/:id/products.
func (pc *ProductController) GetProductsByShop(c *gin.Context) {
	ctx := c.Request.Context()
	shopID := c.Param("shopId")
	if shopID == "" {
		shopID = c.Param("id")
	}

	if cached, ok := pc.cache.GetProductList(ctx, "shop:"+shopID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := pc.service.ListByShop(ctx, shopID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.SetProductListAsync("shop:"+shopID, products)
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) CreateProduct(c *gin.Context) {
	var fields bson.M
	if err := c.ShouldBindJSON(&fields); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid JSON body"))
		return
	}

	product, err := pc.service.Create(c.Request.Context(), fields)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), product.ID.Hex())
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct merges the body onto the product; this is the trigger
// point for restock notifications.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid JSON body"))
		return
	}

	product, err := pc.service.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetNotifications lists a product's restock send attempts (admin only).
func (pc *ProductController) GetNotifications(c *gin.Context) {
	logs, err := pc.service.Notifications(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Subscribe adds an email to the product's restock waitlist. Open to
// unauthenticated callers; subscribing twice is a no-op.
func (pc *ProductController) Subscribe(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Email is required"))
		return
	}

	if err := pc.service.Subscribe(c.Request.Context(), c.Param("id"), req.Email); err != nil {
		apperrors.Respond(c, err)
		return
	}

	pc.cache.InvalidateProduct(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Restock reminder registered"})
}
