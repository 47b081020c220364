package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/nassimidr/Emall/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ShopController struct {
	shops repository.ShopRepository
	malls repository.MallRepository
}

func NewShopController(shops repository.ShopRepository, malls repository.MallRepository) *ShopController {
	return &ShopController{shops: shops, malls: malls}
}

func (sc *ShopController) GetShops(c *gin.Context) {
	shops, err := sc.shops.FindAll(c.Request.Context())
	if err != nil {
		zap.L().Error("Error fetching shops", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (sc *ShopController) GetShopByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid shop ID"))
		return
	}

	shop, err := sc.shops.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Shop not found"))
			return
		}
		zap.L().Error("Error fetching shop", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// GetShopsByMall lists a mall's shops. A mall with no shops answers with
// an empty array, never a 404. Mounted both as /shops/mall/:mallId and as
// the nested /malls/:id/shops.
func (sc *ShopController) GetShopsByMall(c *gin.Context) {
	param := c.Param("mallId")
	if param == "" {
		param = c.Param("id")
	}
	mallID, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid mall ID"))
		return
	}

	shops, err := sc.shops.FindByMall(c.Request.Context(), mallID)
	if err != nil {
		zap.L().Error("Error fetching shops by mall", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (sc *ShopController) GetShopByName(c *gin.Context) {
	shop, err := sc.shops.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Shop not found"))
			return
		}
		zap.L().Error("Error fetching shop by name", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, shop)
}

// CreateShop persists a new shop after checking that the owning mall
// actually exists; a shop cannot dangle from a missing mall.
func (sc *ShopController) CreateShop(c *gin.Context) {
	var shop models.Shop
	if err := c.ShouldBindJSON(&shop); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Shop name and mallId are required"))
		return
	}

	if _, err := sc.malls.FindByID(c.Request.Context(), shop.MallID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Mall not found"))
			return
		}
		zap.L().Error("Error checking mall for shop", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}

	shop.ID = primitive.NilObjectID
	if err := sc.shops.Create(c.Request.Context(), &shop); err != nil {
		zap.L().Error("Error creating shop", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusCreated, shop)
}

func (sc *ShopController) UpdateShop(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid shop ID"))
		return
	}

	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid JSON body"))
		return
	}
	delete(updates, "_id")
	if len(updates) == 0 {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("No update fields provided"))
		return
	}

	shop, err := sc.shops.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Shop not found"))
			return
		}
		zap.L().Error("Error updating shop", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (sc *ShopController) DeleteShop(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid shop ID"))
		return
	}

	count, err := sc.shops.Delete(c.Request.Context(), id)
	if err != nil {
		zap.L().Error("Error deleting shop", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	if count == 0 {
		apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Shop not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop deleted successfully"})
}
