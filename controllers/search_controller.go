package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/services"
)

type SearchController struct {
	service services.SearchService
}

func NewSearchController(service services.SearchService) *SearchController {
	return &SearchController{service: service}
}

// Search answers a free-text query with matches merged from malls, shops
// and products.
func (sc *SearchController) Search(c *gin.Context) {
	result, err := sc.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
