package controllers

import (
	"errors"
	"net/http"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/gin-gonic/gin"
)

// respondError maps the model error taxonomy onto HTTP statuses so every
// handler reports failures the same way.
func respondError(c *gin.Context, moduleName string, funcName string, err error) {
	logger := config.GetLogger()

	var validationErr *models.ValidationError
	var stockErr *models.InsufficientStockError
	var skuErr *models.DuplicateSkuError

	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "validation failed",
			"violations": validationErr.Violations,
		})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.As(err, &skuErr):
		c.JSON(http.StatusConflict, gin.H{"error": skuErr.Error()})
	default:
		config.LogError(logger, moduleName, funcName, "unhandled error", nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
