package v1

import (
	"net/http"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/httputil"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/recurring"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the routes for transactions.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetTransactions)
	r.POST("", co.CreateTransaction)

	r.OPTIONS("/:id", httputil.OptionsGetDelete)
	r.GET("/:id", co.GetTransaction)
	r.DELETE("/:id", co.DeleteTransaction)

	r.OPTIONS("/:id/stop", httputil.OptionsPost)
	r.POST("/:id/stop", co.StopTransaction)
}

// getTransactionResource loads a transaction and verifies ownership.
func getTransactionResource(c *gin.Context) (models.Transaction, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(newTransactionError(http.StatusBadRequest, httputil.ErrInvalidUUID))
		return models.Transaction{}, false
	}

	var transaction models.Transaction
	err := models.DB.Where(&models.Transaction{UserID: auth.UserID(c)}).First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(newTransactionError(status(err), err))
		return models.Transaction{}, false
	}

	return transaction, true
}

// GetTransactions returns all transactions of the authenticated user.
//
//	@Summary		List transactions
//	@Description	Returns the transactions of the authenticated user, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionListResponse
//	@Failure		401	{object}	TransactionListResponse
//	@Failure		500	{object}	TransactionListResponse
//	@Router			/v1/transactions [get]
//	@Security		BearerAuth
func (co Controller) GetTransactions(c *gin.Context) {
	var transactions []models.Transaction
	err := models.DB.
		Where(&models.Transaction{UserID: auth.UserID(c)}).
		Order("date(date) DESC, created_at DESC").
		Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// CreateTransaction creates a new transaction. Recurring templates
// immediately generate all instances that are already due.
//
//	@Summary		Create transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		401			{object}	TransactionResponse
//	@Failure		500			{object}	TransactionResponse
//	@Param			transaction	body		TransactionEditable	true	"Transaction"
//	@Router			/v1/transactions [post]
//	@Security		BearerAuth
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(newTransactionError(status(err), err))
		return
	}

	transaction := editable.model(auth.UserID(c))
	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(newTransactionError(status(err), err))
		return
	}

	if transaction.IsRecurring {
		if _, err := recurring.CatchUp(models.DB, transaction, time.Now()); err != nil {
			c.JSON(newTransactionError(status(err), err))
			return
		}

		// Reload to return the advanced occurrence pointer.
		if err := models.DB.First(&transaction, transaction.ID).Error; err != nil {
			c.JSON(newTransactionError(status(err), err))
			return
		}
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetTransaction returns a single transaction by its ID.
//
//	@Summary		Get transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	TransactionResponse
//	@Failure		401	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [get]
//	@Security		BearerAuth
func (co Controller) GetTransaction(c *gin.Context) {
	transaction, ok := getTransactionResource(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// DeleteTransaction deletes a transaction.
//
//	@Summary		Delete transaction
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	TransactionResponse
//	@Failure		401	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/transactions/{id} [delete]
//	@Security		BearerAuth
func (co Controller) DeleteTransaction(c *gin.Context) {
	transaction, ok := getTransactionResource(c)
	if !ok {
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(newTransactionError(status(err), err))
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// StopTransaction deactivates a recurring template. Already generated
// instances are kept.
//
//	@Summary		Stop recurring transaction
//	@Description	Deactivates a recurring template so no further instances are generated
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	TransactionResponse
//	@Failure		401	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/transactions/{id}/stop [post]
//	@Security		BearerAuth
func (co Controller) StopTransaction(c *gin.Context) {
	transaction, ok := getTransactionResource(c)
	if !ok {
		return
	}

	if err := transaction.Stop(models.DB); err != nil {
		c.JSON(newTransactionError(status(err), err))
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}
