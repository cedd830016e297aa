package v1

import (
	"net/http"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/httputil"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/recurring"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", co.GetDashboard)
}

// Dashboard summarizes the authenticated user's finances.
type Dashboard struct {
	TotalIncome   decimal.Decimal      `json:"totalIncome" example:"3400.00"`
	TotalExpenses decimal.Decimal      `json:"totalExpenses" example:"1250.00"`
	Balance       decimal.Decimal      `json:"balance" example:"2150.00"`
	Generated     int                  `json:"generated" example:"2"`
	Alerts        []BudgetWithStatus   `json:"alerts"`
	Recent        []models.Transaction `json:"recent"`
}

// DashboardResponse is the response for the dashboard.
type DashboardResponse struct {
	Data  *Dashboard `json:"data"`
	Error *string    `json:"error" example:"there is an error in your database backend"`
}

// GetDashboard returns the financial summary for the authenticated user.
// Overdue recurring transactions are generated before the totals are
// computed so that the numbers are current.
//
//	@Summary		Dashboard
//	@Description	Returns income, expense and balance totals together with budget alerts
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	DashboardResponse
//	@Failure		401	{object}	DashboardResponse
//	@Failure		500	{object}	DashboardResponse
//	@Router			/v1/dashboard [get]
//	@Security		BearerAuth
func (co Controller) GetDashboard(c *gin.Context) {
	userID := auth.UserID(c)
	now := time.Now()

	generated, err := recurring.CatchUpUser(models.DB, userID, now)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	income, err := models.TransactionSum(models.DB, userID, models.TransactionTypeIncome)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	expenses, err := models.TransactionSum(models.DB, userID, models.TransactionTypeExpense)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	var budgets []models.Budget
	err = models.DB.Where(&models.Budget{UserID: userID}).Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	month := types.MonthOf(now)
	alerts := make([]BudgetWithStatus, 0)
	for _, budget := range budgets {
		budgetStatus, err := budget.Status(models.DB, month)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DashboardResponse{Error: &s})
			return
		}

		if budgetStatus.Alert {
			alerts = append(alerts, BudgetWithStatus{Budget: budget, Status: budgetStatus})
		}
	}

	var recent []models.Transaction
	err = models.DB.
		Where(&models.Transaction{UserID: userID}).
		Order("date(date) DESC, created_at DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &Dashboard{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
		Generated:     generated,
		Alerts:        alerts,
		Recent:        recent,
	}})
}
