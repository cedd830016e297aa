package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SplitKind describes how a group expense is divided among members.
type SplitKind string

const (
	SplitKindEqual   SplitKind = "equal"
	SplitKindUnequal SplitKind = "unequal"
)

// GroupExpense is an immutable ledger entry of a group.
//
// A regular entry records an expense paid by one member and split among
// members. A settlement entry records a debt-reducing payment between two
// members; it has exactly one split, assigning the full amount to the
// payee. Entries are never updated, corrections happen through
// compensating entries.
type GroupExpense struct {
	DefaultModel
	Group        Group `json:"-"`
	GroupID      uuid.UUID
	Description  string
	TotalAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidBy       User            `json:"-"`
	PaidByID     uuid.UUID
	SplitKind    SplitKind      `gorm:"default:equal"`
	Splits       []ExpenseSplit `gorm:"constraint:OnDelete:CASCADE"`
	Date         time.Time
	IsSettlement bool
	PaidToID     *uuid.UUID
}

// ExpenseSplit assigns a share of a group expense to one member.
//
// Amounts keep full precision, equal splits store the exact fractional
// share. Rounding happens only at comparison and display boundaries.
type ExpenseSplit struct {
	DefaultModel
	GroupExpenseID uuid.UUID
	User           User `json:"-"`
	UserID         uuid.UUID
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrExpenseAmountNotPositive = errors.New("the expense amount must be larger than zero")
	ErrSplitKindInvalid         = errors.New("the split kind must be equal or unequal")
	ErrSettlementPayeeRequired  = errors.New("a settlement needs a recipient")
)

// BeforeSave normalizes and validates the ledger entry.
func (e *GroupExpense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	if e.SplitKind != SplitKindEqual && e.SplitKind != SplitKindUnequal {
		return ErrSplitKindInvalid
	}

	if !decimal.Decimal.IsPositive(e.TotalAmount) {
		return ErrExpenseAmountNotPositive
	}

	if e.IsSettlement && e.PaidToID == nil {
		return ErrSettlementPayeeRequired
	}

	return nil
}

func (e *GroupExpense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	return e.checkIntegrity(tx)
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (e *GroupExpense) AfterFind(tx *gorm.DB) (err error) {
	_ = e.DefaultModel.AfterFind(tx)

	e.Date = e.Date.In(time.UTC)
	return nil
}

// checkIntegrity verifies references to other resources
func (e *GroupExpense) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&Group{}, e.GroupID).Error
	if err != nil {
		return err
	}

	return tx.First(&User{}, e.PaidByID).Error
}
