package v1

import (
	"net/http"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/httputil"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budgets.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", co.GetBudgets)
	r.POST("", co.CreateBudget)

	r.OPTIONS("/:id", httputil.OptionsDelete)
	r.DELETE("/:id", co.DeleteBudget)
}

// BudgetEditable are the fields of a budget that clients can set.
type BudgetEditable struct {
	Category string          `json:"category" example:"groceries*"`
	Limit    decimal.Decimal `json:"limit" example:"300"`
}

// BudgetWithStatus is a budget together with its evaluation for a month.
type BudgetWithStatus struct {
	models.Budget
	Status models.BudgetStatus `json:"status"`
}

// BudgetResponse is the response for a single budget.
type BudgetResponse struct {
	Data  *models.Budget `json:"data"`
	Error *string        `json:"error" example:"the budget limit must be positive"`
}

// BudgetListResponse is the response for a list of budgets.
type BudgetListResponse struct {
	Data  []BudgetWithStatus `json:"data"`
	Error *string            `json:"error" example:"the budget limit must be positive"`
}

// BudgetQuery are the query parameters for listing budgets.
type BudgetQuery struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2022-07"` // Year and month
}

// GetBudgets returns the budgets of the authenticated user, each
// evaluated for the requested month. The month defaults to the current one.
//
//	@Summary		List budgets
//	@Tags			Budgets
//	@Produce		json
//	@Success		200		{object}	BudgetListResponse
//	@Failure		400		{object}	BudgetListResponse
//	@Failure		401		{object}	BudgetListResponse
//	@Failure		500		{object}	BudgetListResponse
//	@Param			month	query		string	false	"Month to evaluate, format 2025-03"
//	@Router			/v1/budgets [get]
//	@Security		BearerAuth
func (co Controller) GetBudgets(c *gin.Context) {
	var query BudgetQuery
	if err := c.BindQuery(&query); err != nil {
		s := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{Error: &s})
		return
	}

	month := types.MonthOf(time.Now())
	if !query.Month.IsZero() {
		month = types.MonthOf(query.Month)
	}

	var budgets []models.Budget
	err := models.DB.
		Where(&models.Budget{UserID: auth.UserID(c)}).
		Order("category ASC").
		Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	data := make([]BudgetWithStatus, 0, len(budgets))
	for _, budget := range budgets {
		budgetStatus, err := budget.Status(models.DB, month)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetListResponse{Error: &s})
			return
		}

		data = append(data, BudgetWithStatus{Budget: budget, Status: budgetStatus})
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// CreateBudget creates a new budget for the authenticated user.
//
//	@Summary		Create budget
//	@Tags			Budgets
//	@Produce		json
//	@Success		201		{object}	BudgetResponse
//	@Failure		400		{object}	BudgetResponse
//	@Failure		401		{object}	BudgetResponse
//	@Failure		500		{object}	BudgetResponse
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/budgets [post]
//	@Security		BearerAuth
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	budget := models.Budget{
		UserID:   auth.UserID(c),
		Category: editable.Category,
		Limit:    editable.Limit,
	}

	if err := models.DB.Create(&budget).Error; err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: &budget})
}

// DeleteBudget deletes a budget.
//
//	@Summary		Delete budget
//	@Tags			Budgets
//	@Success		204
//	@Failure		400	{object}	BudgetResponse
//	@Failure		401	{object}	BudgetResponse
//	@Failure		404	{object}	BudgetResponse
//	@Param			id	path		URIID	true	"ID formatted as string"
//	@Router			/v1/budgets/{id} [delete]
//	@Security		BearerAuth
func (co Controller) DeleteBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return
	}

	var budget models.Budget
	err := models.DB.Where(&models.Budget{UserID: auth.UserID(c)}).First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
