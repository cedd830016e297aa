package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/Vivekpatel2007/Expense-Tracker/internal/controllers/v1"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestGroup(token, name string) models.Group {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "/v1/groups", v1.GroupEditable{Name: name}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GroupResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	return *response.Data
}

func (suite *TestSuiteStandard) addTestMember(token string, group models.Group, username string) {
	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "members"), v1.MemberEditable{Username: username}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGroupCreateAndList() {
	_, token := suite.registerTestUser()
	_, otherToken := suite.registerTestUser()

	created := suite.createTestGroup(token, "Flat 4B")
	suite.createTestGroup(otherToken, "Other flat")

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "/v1/groups", nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.GroupListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(created.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestGroupCreateInvalid() {
	_, token := suite.registerTestUser()

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, "/v1/groups", v1.GroupEditable{Name: "  "}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGroupDetail() {
	creator, token := suite.registerTestUser()
	member, _ := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")
	suite.addTestMember(token, group, member.Username)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "expenses"), v1.GroupExpenseEditable{
		Description: "Dinner",
		TotalAmount: decimal.NewFromFloat(100),
		SplitKind:   models.SplitKindEqual,
		Date:        time.Now(),
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, path("groups", group.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.GroupDetailResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Members, 2)
	suite.Assert().Len(response.Data.Expenses, 1)

	balances := make(map[uuid.UUID]decimal.Decimal, 2)
	for _, mb := range response.Data.Members {
		balances[mb.User.ID] = mb.Balance
	}

	suite.Assert().True(balances[creator.ID].Equal(decimal.NewFromFloat(50)), "creator's balance is %s", balances[creator.ID])
	suite.Assert().True(balances[member.ID].Equal(decimal.NewFromFloat(-50)), "member's balance is %s", balances[member.ID])
}

func (suite *TestSuiteStandard) TestGroupAccessDenied() {
	_, token := suite.registerTestUser()
	_, otherToken := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")

	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, path("groups", group.ID), nil, test.BearerHeader(otherToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestGroupAddUnknownMember() {
	_, token := suite.registerTestUser()
	group := suite.createTestGroup(token, "Flat 4B")

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "members"), v1.MemberEditable{Username: "nobody"}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGroupRemoveMember() {
	_, token := suite.registerTestUser()
	member, memberToken := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")
	suite.addTestMember(token, group, member.Username)

	// Members cannot remove each other
	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, path("groups", group.ID, "members", member.ID), nil, test.BearerHeader(memberToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, path("groups", group.ID, "members", member.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGroupExpenseUnequal() {
	creator, token := suite.registerTestUser()
	member, _ := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")
	suite.addTestMember(token, group, member.Username)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "expenses"), v1.GroupExpenseEditable{
		Description: "Groceries",
		TotalAmount: decimal.NewFromFloat(100),
		SplitKind:   models.SplitKindUnequal,
		Shares: map[uuid.UUID]decimal.Decimal{
			creator.ID: decimal.NewFromFloat(70),
			member.ID:  decimal.NewFromFloat(30),
		},
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GroupExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Len(response.Data.Splits, 2)
}

func (suite *TestSuiteStandard) TestGroupExpenseSplitMismatch() {
	creator, token := suite.registerTestUser()
	group := suite.createTestGroup(token, "Flat 4B")

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "expenses"), v1.GroupExpenseEditable{
		Description: "Groceries",
		TotalAmount: decimal.NewFromFloat(100),
		SplitKind:   models.SplitKindUnequal,
		Shares: map[uuid.UUID]decimal.Decimal{
			creator.ID: decimal.NewFromFloat(50),
		},
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGroupExpenseDelete() {
	_, token := suite.registerTestUser()
	member, memberToken := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")
	suite.addTestMember(token, group, member.Username)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "expenses"), v1.GroupExpenseEditable{
		Description: "Dinner",
		TotalAmount: decimal.NewFromFloat(50),
		SplitKind:   models.SplitKindEqual,
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GroupExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	// Only the payer can delete the entry
	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, path("groups", group.ID, "expenses", response.Data.ID), nil, test.BearerHeader(memberToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, path("groups", group.ID, "expenses", response.Data.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGroupSettlement() {
	creator, token := suite.registerTestUser()
	member, memberToken := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")
	suite.addTestMember(token, group, member.Username)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "expenses"), v1.GroupExpenseEditable{
		Description: "Rent",
		TotalAmount: decimal.NewFromFloat(100),
		SplitKind:   models.SplitKindEqual,
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Overpaying is rejected
	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "settlements"), v1.SettlementEditable{
		PaidToID: creator.ID,
		Amount:   decimal.NewFromFloat(50.02),
	}, test.BearerHeader(memberToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "settlements"), v1.SettlementEditable{
		PaidToID: creator.ID,
		Amount:   decimal.NewFromFloat(50),
	}, test.BearerHeader(memberToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.GroupExpenseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.IsSettlement)
}

func (suite *TestSuiteStandard) TestGroupLeaveUnsettled() {
	_, token := suite.registerTestUser()
	member, memberToken := suite.registerTestUser()

	group := suite.createTestGroup(token, "Flat 4B")
	suite.addTestMember(token, group, member.Username)

	recorder := test.Request(suite.controller, suite.T(), http.MethodPost, path("groups", group.ID, "expenses"), v1.GroupExpenseEditable{
		Description: "Rent",
		TotalAmount: decimal.NewFromFloat(100),
		SplitKind:   models.SplitKindEqual,
	}, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = test.Request(suite.controller, suite.T(), http.MethodDelete, path("groups", group.ID), nil, test.BearerHeader(memberToken))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestGroupLeaveCreatorDeletes() {
	_, token := suite.registerTestUser()
	group := suite.createTestGroup(token, "Flat 4B")

	recorder := test.Request(suite.controller, suite.T(), http.MethodDelete, path("groups", group.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.controller, suite.T(), http.MethodGet, path("groups", group.ID), nil, test.BearerHeader(token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
