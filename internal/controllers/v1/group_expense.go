package v1

import (
	"net/http"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/httputil"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/ledger"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GroupExpenseEditable are the fields of a group expense that clients can set.
// Shares is only used for unequal splits and maps member IDs to the exact
// amount each member owes.
type GroupExpenseEditable struct {
	Description string                        `json:"description" example:"Dinner at the pizzeria"`
	TotalAmount decimal.Decimal               `json:"totalAmount" example:"64.20"`
	SplitKind   models.SplitKind              `json:"splitKind" example:"equal"`
	Shares      map[uuid.UUID]decimal.Decimal `json:"shares"`
	Date        time.Time                     `json:"date" example:"2025-03-17T00:00:00Z"`
}

// SettlementEditable is the request body for recording a settlement payment.
type SettlementEditable struct {
	PaidToID uuid.UUID       `json:"paidToId" example:"d1b8f9a0-0000-0000-0000-000000000000"`
	Amount   decimal.Decimal `json:"amount" example:"25.00"`
	Date     time.Time       `json:"date" example:"2025-03-17T00:00:00Z"`
}

// GroupExpenseResponse is the response for a single group expense.
type GroupExpenseResponse struct {
	Data  *models.GroupExpense `json:"data"`
	Error *string              `json:"error" example:"the expense amount must be positive"`
}

// CreateGroupExpense records a shared expense in a group. Equal splits
// divide the total over all current members, unequal splits use the
// amounts from the request.
//
//	@Summary		Create group expense
//	@Tags			Groups
//	@Produce		json
//	@Success		201		{object}	GroupExpenseResponse
//	@Failure		400		{object}	GroupExpenseResponse
//	@Failure		401		{object}	GroupExpenseResponse
//	@Failure		403		{object}	GroupExpenseResponse
//	@Failure		404		{object}	GroupExpenseResponse
//	@Param			id		path		URIID					true	"ID formatted as string"
//	@Param			expense	body		GroupExpenseEditable	true	"Expense"
//	@Router			/v1/groups/{id}/expenses [post]
//	@Security		BearerAuth
func (co Controller) CreateGroupExpense(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	var editable GroupExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupExpenseResponse{Error: &s})
		return
	}

	expense, err := ledger.CreateExpense(
		models.DB,
		group,
		auth.UserID(c),
		editable.Description,
		editable.TotalAmount,
		editable.SplitKind,
		editable.Shares,
		editable.Date,
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupExpenseResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, GroupExpenseResponse{Data: &expense})
}

// DeleteGroupExpense deletes a group expense. Only the member who paid
// the expense may delete it.
//
//	@Summary		Delete group expense
//	@Tags			Groups
//	@Success		204
//	@Failure		400			{object}	GroupExpenseResponse
//	@Failure		401			{object}	GroupExpenseResponse
//	@Failure		403			{object}	GroupExpenseResponse
//	@Failure		404			{object}	GroupExpenseResponse
//	@Param			id			path		string	true	"Group ID formatted as string"
//	@Param			expenseId	path		string	true	"Expense ID formatted as string"
//	@Router			/v1/groups/{id}/expenses/{expenseId} [delete]
//	@Security		BearerAuth
func (co Controller) DeleteGroupExpense(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	var uri GroupExpenseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, GroupExpenseResponse{Error: &s})
		return
	}

	var expense models.GroupExpense
	err := models.DB.Where(&models.GroupExpense{GroupID: group.ID}).First(&expense, uri.ExpenseID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupExpenseResponse{Error: &s})
		return
	}

	if err := ledger.DeleteExpense(models.DB, expense, auth.UserID(c)); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupExpenseResponse{Error: &s})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// CreateSettlement records a settlement payment from the authenticated
// user to another member. The amount must not exceed the payer's debt
// beyond the rounding tolerance.
//
//	@Summary		Create settlement
//	@Tags			Groups
//	@Produce		json
//	@Success		201			{object}	GroupExpenseResponse
//	@Failure		400			{object}	GroupExpenseResponse
//	@Failure		401			{object}	GroupExpenseResponse
//	@Failure		403			{object}	GroupExpenseResponse
//	@Failure		404			{object}	GroupExpenseResponse
//	@Param			id			path		URIID				true	"ID formatted as string"
//	@Param			settlement	body		SettlementEditable	true	"Settlement"
//	@Router			/v1/groups/{id}/settlements [post]
//	@Security		BearerAuth
func (co Controller) CreateSettlement(c *gin.Context) {
	group, ok := getGroupResource(c)
	if !ok {
		return
	}

	var editable SettlementEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(status(err), GroupExpenseResponse{Error: &s})
		return
	}

	settlement, err := ledger.CreateSettlement(
		models.DB,
		group,
		auth.UserID(c),
		editable.PaidToID,
		editable.Amount,
		editable.Date,
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupExpenseResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, GroupExpenseResponse{Data: &settlement})
}
