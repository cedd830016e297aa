package v1

import (
	"time"

	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable are the fields of a transaction that clients can set.
type TransactionEditable struct {
	Type        models.TransactionType `json:"type" example:"expense"`
	Category    string                 `json:"category" example:"groceries"`
	Amount      decimal.Decimal        `json:"amount" example:"14.50"`
	Date        time.Time              `json:"date" example:"2025-03-17T00:00:00Z"`
	IsRecurring bool                   `json:"isRecurring" example:"false"`
	Frequency   models.Frequency       `json:"frequency" example:"monthly"`
}

func (t TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:      userID,
		Type:        t.Type,
		Category:    t.Category,
		Amount:      t.Amount,
		Date:        t.Date,
		IsRecurring: t.IsRecurring,
		IsActive:    t.IsRecurring,
		Frequency:   t.Frequency,
	}
}

// TransactionResponse is the response for a single transaction.
type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error" example:"the specified resource ID is not a valid ID"`
}

// TransactionListResponse is the response for a list of transactions.
type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`
	Error *string              `json:"error" example:"the specified resource ID is not a valid ID"`
}

func newTransactionError(status int, err error) (int, TransactionResponse) {
	s := err.Error()
	return status, TransactionResponse{Error: &s}
}
