// Package api defines the boundary contracts to the remote BetterSplit
// service. The engine only ever talks to these interfaces; the rest
// subpackage implements them over HTTP and the memory subpackage fakes
// them for tests and dry runs.
package api

import (
	"context"

	"github.com/SajjanPaudel/bettersplit/internal/models"
)

// GroupProvider lists the groups the current user belongs to,
// including each group's members.
type GroupProvider interface {
	Groups(ctx context.Context) ([]models.Group, error)
}

// IdentityProvider returns the authenticated user. The composer uses
// it to pre-select the default payer when a group is chosen.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// ExpenseSubmitter issues expense create and update calls. One create
// call is made per draft in a submitted batch.
type ExpenseSubmitter interface {
	CreateExpense(ctx context.Context, exp *models.ExpenseCreate) error
	UpdateExpense(ctx context.Context, expenseID string, exp *models.ExpenseCreate) error
}

// Client bundles every boundary the engine consumes.
type Client interface {
	GroupProvider
	IdentityProvider
	ExpenseSubmitter
}
