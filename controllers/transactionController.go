package controllers

import (
	"net/http"

	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateIncomingTransaction(c *gin.Context) {
	var input models.NewIncomingTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	transaction, err := models.CreateIncomingTransaction(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "transactionController.go", "CreateIncomingTransaction", err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func ListIncomingTransactions(c *gin.Context) {
	transactions, err := models.ListIncomingTransactions(c.Request.Context())
	if err != nil {
		respondError(c, "transactionController.go", "ListIncomingTransactions", err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func CreateOutgoingTransaction(c *gin.Context) {
	var input models.NewOutgoingTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	transaction, err := models.CreateOutgoingTransaction(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "transactionController.go", "CreateOutgoingTransaction", err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

func ListOutgoingTransactions(c *gin.Context) {
	transactions, err := models.ListOutgoingTransactions(c.Request.Context())
	if err != nil {
		respondError(c, "transactionController.go", "ListOutgoingTransactions", err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
