package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/Vivekpatel2007/Expense-Tracker/internal/controllers/v1"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDashboard() {
	_, token := suite.registerTestUser()

	suite.createTestTransaction(token, v1.TransactionEditable{
		Type:   models.TransactionTypeIncome,
		Amount: decimal.NewFromFloat(1000),
	})
	suite.createTestTransaction(token, v1.TransactionEditable{
		Type:     models.TransactionTypeExpense,
		Category: "groceries",
		Amount:   decimal.NewFromFloat(95),
	})
	suite.createTestBudget(token, v1.BudgetEditable{
		Category: "groceries",
		Limit:    decimal.NewFromFloat(100),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/dashboard", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	suite.Assert().True(response.Data.TotalIncome.Equal(decimal.NewFromFloat(1000)), "income is %s", response.Data.TotalIncome)
	suite.Assert().True(response.Data.TotalExpenses.Equal(decimal.NewFromFloat(95)), "expenses are %s", response.Data.TotalExpenses)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromFloat(905)), "balance is %s", response.Data.Balance)
	suite.Assert().Len(response.Data.Alerts, 1)
	suite.Assert().Len(response.Data.Recent, 2)
}

func (suite *TestSuiteStandard) TestDashboardCatchesUpRecurring() {
	user, token := suite.registerTestUser()

	now := time.Now().UTC()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)

	template := models.Transaction{
		UserID:      user.ID,
		Type:        models.TransactionTypeExpense,
		Category:    "rent",
		Amount:      decimal.NewFromFloat(500),
		Date:        anchor,
		IsRecurring: true,
		IsActive:    true,
		Frequency:   models.FrequencyMonthly,
	}
	suite.Require().NoError(models.DB.Create(&template).Error)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/dashboard", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	// The instance on the first of this month was generated on read
	suite.Assert().Equal(1, response.Data.Generated)
	suite.Assert().True(response.Data.TotalExpenses.Equal(decimal.NewFromFloat(1000)), "expenses are %s", response.Data.TotalExpenses)
}

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	_, token := suite.registerTestUser()

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/dashboard", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Balance.IsZero())
	suite.Assert().Empty(response.Data.Alerts)
}
