package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/nassimidr/Emall/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type MallController struct {
	malls repository.MallRepository
}

func NewMallController(malls repository.MallRepository) *MallController {
	return &MallController{malls: malls}
}

func (mc *MallController) GetMalls(c *gin.Context) {
	malls, err := mc.malls.FindAll(c.Request.Context())
	if err != nil {
		zap.L().Error("Error fetching malls", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, malls)
}

func (mc *MallController) GetMallByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid mall ID"))
		return
	}

	mall, err := mc.malls.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Mall not found"))
			return
		}
		zap.L().Error("Error fetching mall", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, mall)
}

func (mc *MallController) CreateMall(c *gin.Context) {
	var mall models.Mall
	if err := c.ShouldBindJSON(&mall); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Mall name is required"))
		return
	}
	mall.ID = primitive.NilObjectID
	mall.CreatedAt = time.Now().UTC()

	if err := mc.malls.Create(c.Request.Context(), &mall); err != nil {
		zap.L().Error("Error creating mall", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusCreated, mall)
}

func (mc *MallController) UpdateMall(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid mall ID"))
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

	mall, err := mc.malls.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Mall not found"))
			return
		}
		zap.L().Error("Error updating mall", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	c.JSON(http.StatusOK, mall)
}

func (mc *MallController) DeleteMall(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Invalid mall ID"))
		return
	}

	count, err := mc.malls.Delete(c.Request.Context(), id)
	if err != nil {
		zap.L().Error("Error deleting mall", zap.Error(err))
		apperrors.Respond(c, apperrors.ErrServerFault)
		return
	}
	if count == 0 {
		apperrors.Respond(c, apperrors.ErrNotFound.WithMessage("Mall not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mall deleted successfully"})
}
