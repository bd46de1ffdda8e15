package controllers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"github.com/gin-gonic/gin"
)

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func CreateItem(c *gin.Context) {
	var input models.NewItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := models.CreateItem(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "itemController.go", "CreateItem", err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func GetItem(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	item, err := models.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, "itemController.go", "GetItem", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func itemFilterFromQuery(c *gin.Context) (*models.ItemFilter, bool) {
	filter := &models.ItemFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.Query("sort_by"),
	}
	if raw := c.Query("stock_status"); raw != "" {
		status, err := models.ParseStockStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		filter.StockStatus = &status
	}
	return filter, true
}

func ListItems(c *gin.Context) {
	filter, ok := itemFilterFromQuery(c)
	if !ok {
		return
	}

	items, err := models.ListItems(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "itemController.go", "ListItems", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func UpdateItem(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	var input models.UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := models.UpdateItem(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "itemController.go", "UpdateItem", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func DeleteItem(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	item, err := models.DeleteItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, "itemController.go", "DeleteItem", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func ListCategories(c *gin.Context) {
	categories, err := models.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, "itemController.go", "ListCategories", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
