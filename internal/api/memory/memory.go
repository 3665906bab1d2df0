// Package memory provides an in-memory implementation of the api
// boundary interfaces. It backs the engine's tests and the CLI's
// dry-run mode, recording submissions instead of sending them.
package memory

import (
	"context"
	"sync"

	"github.com/SajjanPaudel/bettersplit/internal/api"
	"github.com/SajjanPaudel/bettersplit/internal/models"
)

// Client is a fake api.Client. Submissions are recorded in order; the
// mutex makes it safe for the composer's concurrent create calls.
type Client struct {
	mu      sync.Mutex
	user    models.User
	groups  []models.Group
	created []models.ExpenseCreate
	updated map[string]models.ExpenseCreate

	// FailCreate, when set, is returned by CreateExpense for any
	// expense whose name it maps to an error.
	FailCreate map[string]error
}

var _ api.Client = (*Client)(nil)

// New returns a fake serving the given identity and groups.
func New(user models.User, groups []models.Group) *Client {
	return &Client{
		user:    user,
		groups:  groups,
		updated: make(map[string]models.ExpenseCreate),
	}
}

// CurrentUser returns the configured identity.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	u := c.user
	return &u, nil
}

// Groups returns a copy of the configured groups.
func (c *Client) Groups(ctx context.Context) ([]models.Group, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Group, len(c.groups))
	copy(out, c.groups)
	return out, nil
}

// CreateExpense records the payload, or fails if FailCreate says so.
func (c *Client) CreateExpense(ctx context.Context, exp *models.ExpenseCreate) error {
	if err := c.FailCreate[exp.Name]; err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, *exp)
	return nil
}

// UpdateExpense records the payload under the expense ID.
func (c *Client) UpdateExpense(ctx context.Context, expenseID string, exp *models.ExpenseCreate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updated[expenseID] = *exp
	return nil
}

// Created returns a copy of all recorded create payloads.
func (c *Client) Created() []models.ExpenseCreate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ExpenseCreate, len(c.created))
	copy(out, c.created)
	return out
}

// Updated returns the recorded update payload for the given ID, if any.
func (c *Client) Updated(expenseID string) (models.ExpenseCreate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp, ok := c.updated[expenseID]
	return exp, ok
}
