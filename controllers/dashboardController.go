package controllers

import (
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/gin-gonic/gin"
)

func GetDashboardStats(c *gin.Context) {
	stats, err := models.GetDashboardStats(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, "dashboardController.go", "GetDashboardStats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func ListLowStockItems(c *gin.Context) {
	items, err := models.ListLowStockItems(c.Request.Context())
	if err != nil {
		respondError(c, "dashboardController.go", "ListLowStockItems", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func RecentOutgoingTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	transactions, err := models.RecentOutgoingTransactions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "dashboardController.go", "RecentOutgoingTransactions", err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// AnalyzeProfit is a pure calculation endpoint: it reads prices from the
// query string and never touches stored items.
func AnalyzeProfit(c *gin.Context) {
	costPrice, err := utils.ParseDecimal(c.Query("cost_price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost_price"})
		return
	}
	sellingPrice, err := utils.ParseDecimal(c.Query("selling_price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid selling_price"})
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeProfit(costPrice, sellingPrice))
}

func ValuateStock(c *gin.Context) {
	filter, ok := itemFilterFromQuery(c)
	if !ok {
		return
	}

	items, err := models.ListItems(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "dashboardController.go", "ValuateStock", err)
		return
	}

	c.JSON(http.StatusOK, models.ValuateStock(items))
}

func ExportInventoryExcel(c *gin.Context) {
	filter, ok := itemFilterFromQuery(c)
	if !ok {
		return
	}

	workbook, err := models.ExportInventoryExcel(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "dashboardController.go", "ExportInventoryExcel", err)
		return
	}

	fileName := "inventory-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "dashboardController.go", "ExportInventoryExcel", "workbook.Write", nil, err)
	}
}
