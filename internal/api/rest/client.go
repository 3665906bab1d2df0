// Package rest implements the api boundary interfaces against the
// remote BetterSplit REST API.
package rest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/SajjanPaudel/bettersplit/internal/api"
	"github.com/SajjanPaudel/bettersplit/internal/models"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Client talks to the BetterSplit API over HTTP. Requests carry the
// configured auth token; no timeout is enforced here beyond a caller's
// context deadline.
type Client struct {
	baseURL string
	token   string
	http    *fasthttp.Client
}

var _ api.Client = (*Client)(nil)

// New returns a client for the API at baseURL, authenticating every
// request with the given token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &fasthttp.Client{},
	}
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, fasthttp.MethodGet, "/api/user/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Groups fetches the current user's groups with their members.
func (c *Client) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := c.do(ctx, fasthttp.MethodGet, "/api/groups/", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateExpense posts one expense-create payload.
func (c *Client) CreateExpense(ctx context.Context, exp *models.ExpenseCreate) error {
	return c.do(ctx, fasthttp.MethodPost, "/api/expenses/", exp, nil)
}

// UpdateExpense replaces an existing expense with the given payload.
func (c *Client) UpdateExpense(ctx context.Context, expenseID string, exp *models.ExpenseCreate) error {
	return c.do(ctx, fasthttp.MethodPut, "/api/expenses/"+expenseID+"/", exp, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(buf)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.Do(req, resp)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		slog.Debug("api request rejected", "method", method, "path", path, "status", code)
		return &StatusError{Method: method, Path: path, Code: code}
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
