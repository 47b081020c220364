package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/middleware"
	"github.com/nassimidr/Emall/services"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type ReviewController struct {
	service services.ReviewService
}

func NewReviewController(service services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

func (rc *ReviewController) GetReviews(c *gin.Context) {
	reviews, err := rc.service.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("Rating and comment are required"))
		return
	}

	review, err := rc.service.Create(c.Request.Context(), c.Param("id"), userID, req.Rating, req.Comment)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
