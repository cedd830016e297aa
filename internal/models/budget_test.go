package models_test

import (
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestBudgetLimitNotPositive() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Budget{
		UserID:   user.ID,
		Category: "groceries",
		Limit:    decimal.Zero,
	}).Error

	suite.Assert().ErrorIs(err, models.ErrBudgetLimitNotPositive)
}

func (suite *TestSuiteStandard) TestBudgetCategoryUnique() {
	user := suite.createTestUser(models.User{})
	suite.createTestBudget(models.Budget{UserID: user.ID, Category: "groceries"})

	err := models.DB.Create(&models.Budget{
		UserID:   user.ID,
		Category: "Groceries",
		Limit:    decimal.NewFromFloat(50),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetCategoryNotUnique)

	// The same category for another user is fine
	other := suite.createTestUser(models.User{})
	suite.createTestBudget(models.Budget{UserID: other.ID, Category: "groceries"})
}

func (suite *TestSuiteStandard) TestBudgetSpentGlob() {
	user := suite.createTestUser(models.User{})
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "food", Amount: decimal.NewFromFloat(20), Date: date})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "food delivery", Amount: decimal.NewFromFloat(15), Date: date})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "travel", Amount: decimal.NewFromFloat(100), Date: date})

	// Income and other months never count towards a budget
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "food", Type: models.TransactionTypeIncome, Amount: decimal.NewFromFloat(500), Date: date})
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "food", Amount: decimal.NewFromFloat(33), Date: date.AddDate(0, 1, 0)})

	month := types.NewMonth(2025, time.March)

	exact := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "food"})
	spent, err := exact.Spent(models.DB, month)
	suite.Assert().NoError(err)
	suite.Assert().True(spent.Equal(decimal.NewFromFloat(20)), "spent is %s", spent)

	pattern := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "food*"})
	spent, err = pattern.Spent(models.DB, month)
	suite.Assert().NoError(err)
	suite.Assert().True(spent.Equal(decimal.NewFromFloat(35)), "spent is %s", spent)
}

func (suite *TestSuiteStandard) TestBudgetStatus() {
	user := suite.createTestUser(models.User{})
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	month := types.NewMonth(2025, time.March)

	budget := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "rent", Limit: decimal.NewFromFloat(100)})

	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "rent", Amount: decimal.NewFromFloat(80), Date: date})
	status, err := budget.Status(models.DB, month)
	suite.Assert().NoError(err)
	suite.Assert().False(status.Alert)
	suite.Assert().False(status.Over)

	// 90% of the limit raises the alert
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "rent", Amount: decimal.NewFromFloat(10), Date: date})
	status, err = budget.Status(models.DB, month)
	suite.Assert().NoError(err)
	suite.Assert().True(status.Alert)
	suite.Assert().False(status.Over)
	suite.Assert().True(status.Percent.Equal(decimal.NewFromFloat(90)), "percent is %s", status.Percent)

	// Exceeding the limit marks the budget as over
	suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "rent", Amount: decimal.NewFromFloat(10.01), Date: date})
	status, err = budget.Status(models.DB, month)
	suite.Assert().NoError(err)
	suite.Assert().True(status.Alert)
	suite.Assert().True(status.Over)
}

func (suite *TestSuiteStandard) TestCleanupBudgets() {
	user := suite.createTestUser(models.User{})
	old := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "groceries"})
	current := suite.createTestBudget(models.Budget{UserID: user.ID, Category: "rent"})

	// Backdate the old budget beyond the retention window
	err := models.DB.Model(&models.Budget{}).
		Where("id = ?", old.ID).
		Session(&gorm.Session{SkipHooks: true}).
		Update("created_at", time.Now().AddDate(0, -4, 0)).Error
	suite.Assert().NoError(err)

	deleted, err := models.CleanupBudgets(models.DB, time.Now())
	suite.Assert().NoError(err)
	suite.Assert().Equal(int64(1), deleted)

	var budgets []models.Budget
	suite.Assert().NoError(models.DB.Find(&budgets).Error)
	suite.Assert().Len(budgets, 1)
	suite.Assert().Equal(current.ID, budgets[0].ID)
}
