// Package ledger computes group balances and validates mutations of the
// group expense ledger.
//
// Balances are a derived view: they are recomputed from the full,
// immutable entry history on every read and never maintained
// incrementally. A member's balance is what they paid minus what they owe
// through splits; positive means the group owes them, negative means they
// owe the group.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

var (
	ErrNotAuthorized         = errors.New("you are not allowed to perform this action")
	ErrNotMember             = errors.New("the user is not a member of this group")
	ErrUnsettledBalance      = errors.New("the member still has an unsettled balance")
	ErrSplitMismatch         = errors.New("the sum of the splits must equal the total amount")
	ErrSplitNegative         = errors.New("split amounts must not be negative")
	ErrSettlementExceedsDebt = errors.New("the settlement amount is higher than the outstanding debt")
	ErrSettleWithSelf        = errors.New("a settlement needs two different members")
)

// Balances computes the net balance of every member from the entry
// history. Entries referencing users that are no longer members are
// counted only for the remaining members, mirroring the read-time nature
// of the view.
//
// The sum over all balances of a group whose entries only reference
// members is always zero up to rounding: everything owed is owed to
// someone.
func Balances(memberIDs []uuid.UUID, expenses []models.GroupExpense) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal, len(memberIDs))
	for _, id := range memberIDs {
		balances[id] = decimal.Zero
	}

	for _, expense := range expenses {
		if balance, ok := balances[expense.PaidByID]; ok {
			balances[expense.PaidByID] = balance.Add(expense.TotalAmount)
		}

		for _, split := range expense.Splits {
			if balance, ok := balances[split.UserID]; ok {
				balances[split.UserID] = balance.Sub(split.Amount)
			}
		}
	}

	return balances
}

// EqualSplits divides a total evenly among members.
//
// Shares keep the full division precision, they are not rounded
// per-split. Rounding fractional cents here would make the shares sum to
// less than the total, the tolerance comparison at validation and display
// time absorbs the remainder instead.
func EqualSplits(total decimal.Decimal, memberIDs []uuid.UUID) []models.ExpenseSplit {
	perPerson := total.Div(decimal.NewFromInt(int64(len(memberIDs))))

	splits := make([]models.ExpenseSplit, 0, len(memberIDs))
	for _, id := range memberIDs {
		splits = append(splits, models.ExpenseSplit{UserID: id, Amount: perPerson})
	}

	return splits
}

// ValidateSplits checks that the splits cover the total amount within the
// money tolerance.
func ValidateSplits(total decimal.Decimal, splits []models.ExpenseSplit) error {
	sum := decimal.Zero
	for _, split := range splits {
		if split.Amount.IsNegative() {
			return ErrSplitNegative
		}

		sum = sum.Add(split.Amount)
	}

	if !money.ApproxEqual(sum, total) {
		return fmt.Errorf("%w: splits sum to %s, total is %s",
			ErrSplitMismatch, money.RoundToCents(sum), money.RoundToCents(total))
	}

	return nil
}

// Debt returns how much the user currently owes the group, rounded to
// cents. A creditor's debt is zero.
func Debt(balances map[uuid.UUID]decimal.Decimal, userID uuid.UUID) decimal.Decimal {
	balance := balances[userID]
	if balance.IsNegative() {
		return money.RoundToCents(balance.Neg())
	}

	return decimal.Zero
}

// CreateExpense validates and appends a regular expense entry.
//
// For an equal split the shares are derived from the current member list.
// For an unequal split the caller supplies one share per member; shares
// must belong to members and sum to the total within tolerance.
func CreateExpense(db *gorm.DB, group models.Group, payerID uuid.UUID, description string, total decimal.Decimal, kind models.SplitKind, shares map[uuid.UUID]decimal.Decimal, date time.Time) (models.GroupExpense, error) {
	if !total.IsPositive() {
		return models.GroupExpense{}, models.ErrExpenseAmountNotPositive
	}

	memberIDs, err := group.MemberIDs(db)
	if err != nil {
		return models.GroupExpense{}, err
	}

	if !slices.Contains(memberIDs, payerID) {
		return models.GroupExpense{}, fmt.Errorf("%w: only members can add expenses", ErrNotMember)
	}

	var splits []models.ExpenseSplit
	switch kind {
	case models.SplitKindEqual:
		splits = EqualSplits(total, memberIDs)
	case models.SplitKindUnequal:
		for userID, amount := range shares {
			if !slices.Contains(memberIDs, userID) {
				return models.GroupExpense{}, fmt.Errorf("%w: split for user %s", ErrNotMember, userID)
			}

			splits = append(splits, models.ExpenseSplit{UserID: userID, Amount: amount})
		}

		if err := ValidateSplits(total, splits); err != nil {
			return models.GroupExpense{}, err
		}
	default:
		return models.GroupExpense{}, models.ErrSplitKindInvalid
	}

	expense := models.GroupExpense{
		GroupID:     group.ID,
		Description: description,
		TotalAmount: total,
		PaidByID:    payerID,
		SplitKind:   kind,
		Splits:      splits,
		Date:        date,
	}

	err = db.Create(&expense).Error
	if err != nil {
		return models.GroupExpense{}, err
	}

	return expense, nil
}

// CreateSettlement validates and appends a settlement entry.
//
// The payer may settle at most their current debt, computed from the
// ledger at call time and rounded to cents, plus the tolerance. The entry
// is a single split assigning the full amount to the payee.
func CreateSettlement(db *gorm.DB, group models.Group, payerID, payeeID uuid.UUID, amount decimal.Decimal, date time.Time) (models.GroupExpense, error) {
	if !amount.IsPositive() {
		return models.GroupExpense{}, models.ErrExpenseAmountNotPositive
	}

	if payerID == payeeID {
		return models.GroupExpense{}, ErrSettleWithSelf
	}

	memberIDs, err := group.MemberIDs(db)
	if err != nil {
		return models.GroupExpense{}, err
	}

	if !slices.Contains(memberIDs, payerID) || !slices.Contains(memberIDs, payeeID) {
		return models.GroupExpense{}, ErrNotMember
	}

	expenses, err := group.Expenses(db)
	if err != nil {
		return models.GroupExpense{}, err
	}

	debt := Debt(Balances(memberIDs, expenses), payerID)
	if !money.ApproxLessOrEqual(amount, debt) {
		return models.GroupExpense{}, fmt.Errorf("%w: you only owe %s", ErrSettlementExceedsDebt, debt)
	}

	settlement := models.GroupExpense{
		GroupID:      group.ID,
		Description:  "Settlement payment",
		TotalAmount:  amount,
		PaidByID:     payerID,
		SplitKind:    models.SplitKindEqual,
		Splits:       []models.ExpenseSplit{{UserID: payeeID, Amount: amount}},
		Date:         date,
		IsSettlement: true,
		PaidToID:     &payeeID,
	}

	err = db.Create(&settlement).Error
	if err != nil {
		return models.GroupExpense{}, err
	}

	return settlement, nil
}

// DeleteExpense removes a ledger entry. Only the member who paid the
// entry may delete it.
func DeleteExpense(db *gorm.DB, expense models.GroupExpense, actorID uuid.UUID) error {
	if expense.PaidByID != actorID {
		return fmt.Errorf("%w: only the payer can delete an entry", ErrNotAuthorized)
	}

	return db.Delete(&expense).Error
}

// RemoveMember removes another member from the group.
//
// Only the creator may remove members, and never themselves. A member
// whose balance magnitude exceeds the tolerance cannot be removed, their
// debt or credit would silently vanish from the ledger view.
func RemoveMember(db *gorm.DB, group models.Group, actorID, targetID uuid.UUID) error {
	if actorID != group.CreatedByID {
		return fmt.Errorf("%w: only the group creator can remove members", ErrNotAuthorized)
	}

	if targetID == group.CreatedByID {
		return fmt.Errorf("%w: the creator cannot be removed, delete the group instead", ErrNotAuthorized)
	}

	return removeSettledMember(db, group, targetID)
}

// Leave removes the acting member from the group, subject to the same
// settled-balance check as removal. The creator cannot leave: for them,
// Leave deletes the whole group with all its entries.
func Leave(db *gorm.DB, group models.Group, actorID uuid.UUID) error {
	if actorID == group.CreatedByID {
		return deleteGroup(db, group)
	}

	return removeSettledMember(db, group, actorID)
}

func removeSettledMember(db *gorm.DB, group models.Group, targetID uuid.UUID) error {
	memberIDs, err := group.MemberIDs(db)
	if err != nil {
		return err
	}

	if !slices.Contains(memberIDs, targetID) {
		return ErrNotMember
	}

	expenses, err := group.Expenses(db)
	if err != nil {
		return err
	}

	balance := Balances(memberIDs, expenses)[targetID]
	if !money.ApproxEqual(balance, decimal.Zero) {
		return fmt.Errorf("%w of %s", ErrUnsettledBalance, money.RoundToCents(balance.Abs()))
	}

	return group.RemoveMember(db, targetID)
}

// deleteGroup deletes the group with all its entries and memberships.
func deleteGroup(db *gorm.DB, group models.Group) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("group_id = ?", group.ID).Delete(&models.GroupExpense{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&group).Error
	})
}
