package v1

import (
	"github.com/Vivekpatel2007/Expense-Tracker/internal/models"
	"github.com/Vivekpatel2007/Expense-Tracker/internal/uuid"
	"github.com/shopspring/decimal"
)

// GroupEditable are the fields of a group that clients can set.
type GroupEditable struct {
	Name string `json:"name" example:"Flat 4B"`
}

// MemberBalance is a group member together with their net balance.
// A positive balance means the group owes the member money.
type MemberBalance struct {
	User    models.User     `json:"user"`
	Balance decimal.Decimal `json:"balance" example:"-12.50"`
}

// GroupDetail is a group with its members, balances and expense history.
type GroupDetail struct {
	models.Group
	Members  []MemberBalance       `json:"members"`
	Expenses []models.GroupExpense `json:"expenses"`
}

// GroupResponse is the response for a single group.
type GroupResponse struct {
	Data  *models.Group `json:"data"`
	Error *string       `json:"error" example:"the group name must not be empty"`
}

// GroupListResponse is the response for a list of groups.
type GroupListResponse struct {
	Data  []models.Group `json:"data"`
	Error *string        `json:"error" example:"the group name must not be empty"`
}

// GroupDetailResponse is the response for a group detail view.
type GroupDetailResponse struct {
	Data  *GroupDetail `json:"data"`
	Error *string      `json:"error" example:"the group name must not be empty"`
}

// MemberEditable is the request body for adding a group member.
type MemberEditable struct {
	Username string `json:"username" example:"morre"`
}

// GroupMemberURI is the URI binding for member routes.
type GroupMemberURI struct {
	ID     uuid.UUID `uri:"id" binding:"required"`
	UserID uuid.UUID `uri:"userId" binding:"required"`
}

// GroupExpenseURI is the URI binding for expense routes.
type GroupExpenseURI struct {
	ID        uuid.UUID `uri:"id" binding:"required"`
	ExpenseID uuid.UUID `uri:"expenseId" binding:"required"`
}
