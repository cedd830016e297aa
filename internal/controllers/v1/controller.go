// Package v1 implements the HTTP handlers of the first API version.
package v1

import (
	"github.com/Vivekpatel2007/Expense-Tracker/internal/auth"
)

// Controller bundles the dependencies of the v1 handlers.
type Controller struct {
	Tokens *auth.TokenManager
}
