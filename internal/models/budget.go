package models

import (
	"errors"
	"strings"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a monthly spending limit for a category.
//
// The category is a glob pattern, so "food" matches only the "food"
// category while "food*" also matches "food delivery". Matching is
// case-insensitive since categories are stored lower-cased.
type Budget struct {
	DefaultModel
	User     User            `json:"-"`
	UserID   uuid.UUID       `gorm:"uniqueIndex:budget_user_category"`
	Category string          `gorm:"uniqueIndex:budget_user_category"`
	Limit    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var ErrBudgetLimitNotPositive = errors.New("the budget limit must be larger than zero")

// BudgetStatus is the evaluation of a budget against the spend of one month.
type BudgetStatus struct {
	Spent   decimal.Decimal `json:"spent" example:"133.70"` // Amount spent in matching categories this month
	Percent decimal.Decimal `json:"percent" example:"74"`   // Spend as percentage of the limit, rounded to cents
	Alert   bool            `json:"alert" example:"false"`  // True when spend reached 90% of the limit
	Over    bool            `json:"over" example:"false"`   // True when spend exceeds the limit
}

// BeforeSave normalizes and validates the budget.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Category = lowercase.String(strings.TrimSpace(b.Category))

	if !decimal.Decimal.IsPositive(b.Limit) {
		return ErrBudgetLimitNotPositive
	}

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	return tx.First(&User{}, b.UserID).Error
}

// Spent sums the expense transactions of the budget's user in the given
// month whose category matches the budget's category pattern.
//
// Glob matching cannot be pushed into SQL, so the month's expenses are
// loaded and matched here.
func (b Budget) Spent(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var transactions []Transaction

	err := db.
		Where(&Transaction{UserID: b.UserID, Type: TransactionTypeExpense}).
		Where("date >= ? AND date < ?", month.Start(), month.End()).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if glob.Glob(b.Category, t.Category) {
			spent = spent.Add(t.Amount)
		}
	}

	return spent, nil
}

// Status evaluates the budget for the given month.
//
// An alert is raised when spend reaches 90% of the limit; the budget is
// over when spend exceeds the limit.
func (b Budget) Status(db *gorm.DB, month types.Month) (BudgetStatus, error) {
	spent, err := b.Spent(db, month)
	if err != nil {
		return BudgetStatus{}, err
	}

	percent := spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Round(2)

	return BudgetStatus{
		Spent:   spent,
		Percent: percent,
		Alert:   spent.GreaterThanOrEqual(b.Limit.Mul(decimal.NewFromFloat(0.9))),
		Over:    spent.GreaterThan(b.Limit),
	}, nil
}

// CleanupBudgets deletes budgets that were created more than three
// calendar months ago. Budgets are month-scoped, keeping them longer
// only clutters the overview.
func CleanupBudgets(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("created_at < ?", now.In(time.UTC).AddDate(0, -3, 0)).Delete(&Budget{})
	return res.RowsAffected, res.Error
}
