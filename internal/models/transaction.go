package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies a transaction as money coming in or going out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Frequency is the schedule of a recurring transaction template.
type Frequency string

const (
	FrequencyNone    Frequency = "none"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyNone, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}

	return false
}

// Transaction represents a single income or expense record.
//
// A transaction with IsRecurring set is a template: it describes a
// repeating schedule and is advanced by the recurrence engine, which
// creates plain (non-recurring) instance records from it. Stopping a
// template is terminal, it then behaves like any other instance.
type Transaction struct {
	DefaultModel
	User              User `json:"-"`
	UserID            uuid.UUID
	Type              TransactionType
	Category          string
	Amount            decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date              time.Time
	IsRecurring       bool
	IsActive          bool
	Frequency         Frequency       `gorm:"default:none"`
	NextOccurrence    *time.Time
	LastGeneratedDate *time.Time
}

var (
	ErrTransactionAmountNotPositive = errors.New("the transaction amount must be larger than zero")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be income or expense")
	ErrFrequencyInvalid             = errors.New("the frequency is not valid")
	ErrFrequencyRequired            = errors.New("a recurring transaction needs a frequency")
)

// BeforeSave normalizes and validates the transaction.
//
// The category is trimmed and lower-cased so that budget matching and
// aggregation are case-insensitive. Instances never carry a frequency.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Category = lowercase.String(strings.TrimSpace(t.Category))

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return fmt.Errorf("%w: %q", ErrTransactionTypeInvalid, t.Type)
	}

	if !t.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrFrequencyInvalid, t.Frequency)
	}

	if t.IsRecurring && t.Frequency == FrequencyNone {
		return ErrFrequencyRequired
	}

	if !t.IsRecurring {
		t.Frequency = FrequencyNone
		t.IsActive = false
	}

	if !decimal.Decimal.IsPositive(t.Amount) {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return t.checkIntegrity(tx)
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB) error {
	return tx.First(&User{}, t.UserID).Error
}

// Stop ends the recurring schedule of a template. This is terminal: the
// record keeps its history but never generates instances again.
func (t *Transaction) Stop(db *gorm.DB) error {
	return db.Model(t).
		Select("IsActive", "IsRecurring", "Frequency").
		Updates(Transaction{IsActive: false, IsRecurring: false, Frequency: FrequencyNone}).Error
}

// TransactionSum returns the summed amount of all transactions of a user
// with the given type.
func TransactionSum(db *gorm.DB, userID uuid.UUID, t TransactionType) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := db.Table("transactions").
		Where("user_id = ? AND type = ? AND deleted_at IS NULL", userID, t).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s transactions failed: %w", t, err)
	}

	return sum.Decimal, nil
}
