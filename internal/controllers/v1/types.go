package v1

import (
	"github.com/Vivekpatel2007/Expense-Tracker/internal/uuid"
)

// URIID is the URI binding for resources identified by a UUID.
type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"`
}
