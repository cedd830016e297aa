package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/Vivekpatel2007/Expense-Tracker/internal/controllers/v1"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestTransaction(token string, editable v1.TransactionEditable) models.Transaction {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "/v1/transactions", editable, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) TestTransactionCreateAndGet() {
	_, token := suite.registerTestUser()

	created := suite.createTestTransaction(token, v1.TransactionEditable{
		Type:     models.TransactionTypeExpense,
		Category: "Groceries",
		Amount:   decimal.NewFromFloat(14.50),
	})
	suite.Assert().Equal("groceries", created.Category)

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, path("transactions", created.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(created.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalid() {
	_, token := suite.registerTestUser()

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Type:   "transfer",
		Amount: decimal.NewFromFloat(10),
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, "/v1/transactions", `{ "amount": "not-a-number" }`, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionListOwnerScoped() {
	_, token := suite.registerTestUser()
	_, otherToken := suite.registerTestUser()

	suite.createTestTransaction(token, v1.TransactionEditable{
		Type:   models.TransactionTypeExpense,
		Amount: decimal.NewFromFloat(10),
	})
	suite.createTestTransaction(otherToken, v1.TransactionEditable{
		Type:   models.TransactionTypeExpense,
		Amount: decimal.NewFromFloat(20),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/transactions", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 1)
}

func (suite *TestSuiteStandard) TestTransactionGetNotOwned() {
	_, token := suite.registerTestUser()
	_, otherToken := suite.registerTestUser()

	created := suite.createTestTransaction(otherToken, v1.TransactionEditable{
		Type:   models.TransactionTypeExpense,
		Amount: decimal.NewFromFloat(10),
	})

	// Another user's transaction is indistinguishable from a missing one
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, path("transactions", created.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionGetInvalidID() {
	_, token := suite.registerTestUser()

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/transactions/not-a-uuid", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	_, token := suite.registerTestUser()

	created := suite.createTestTransaction(token, v1.TransactionEditable{
		Type:   models.TransactionTypeExpense,
		Amount: decimal.NewFromFloat(10),
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, path("transactions", created.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, path("transactions", created.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionCreateRecurringBackfills() {
	_, token := suite.registerTestUser()

	// Anchor on the first of the month two months ago so the number of
	// due occurrences does not depend on the day this test runs
	now := time.Now().UTC()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)

	created := suite.createTestTransaction(token, v1.TransactionEditable{
		Type:        models.TransactionTypeExpense,
		Category:    "rent",
		Amount:      decimal.NewFromFloat(500),
		Date:        anchor,
		IsRecurring: true,
		Frequency:   models.FrequencyMonthly,
	})

	suite.Assert().True(created.IsRecurring)
	suite.Require().NotNil(created.NextOccurrence, "the occurrence pointer is set on creation")
	suite.Assert().True(created.NextOccurrence.After(time.Now()))

	// The template plus the two backfilled instances
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/transactions", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 3)
}

func (suite *TestSuiteStandard) TestTransactionStop() {
	_, token := suite.registerTestUser()

	created := suite.createTestTransaction(token, v1.TransactionEditable{
		Type:        models.TransactionTypeExpense,
		Category:    "rent",
		Amount:      decimal.NewFromFloat(500),
		IsRecurring: true,
		Frequency:   models.FrequencyMonthly,
	})

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("transactions", created.ID, "stop"), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var reloaded models.Transaction
	suite.Require().NoError(models.DB.First(&reloaded, created.ID).Error)
	suite.Assert().False(reloaded.IsActive)
	suite.Assert().False(reloaded.IsRecurring)
}
