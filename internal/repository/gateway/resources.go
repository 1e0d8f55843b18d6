package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/nexapay/admin-portal/internal/core/domain"
)

// GetUser fetches a fresh back-office user record by id.
func (c *Client) GetUser(ctx context.Context, bearer, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, errors.New("gateway: user id is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/users/"+userID, bearer, nil, nil)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := c.do(c.http, req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListUsers returns a page of back-office users.
func (c *Client) ListUsers(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.StaffUser], error) {
	return listPage[domain.StaffUser](ctx, c, bearer, "/users", q)
}

// ListTransactions returns a page of payment transactions.
func (c *Client) ListTransactions(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.Transaction], error) {
	return listPage[domain.Transaction](ctx, c, bearer, "/transactions", q)
}

// GetTransaction fetches a single transaction by id.
func (c *Client) GetTransaction(ctx context.Context, bearer, id string) (*domain.Transaction, error) {
	return getResource[domain.Transaction](ctx, c, bearer, "/transactions/"+id, id)
}

// ListDisbursements returns a page of payouts.
func (c *Client) ListDisbursements(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.Disbursement], error) {
	return listPage[domain.Disbursement](ctx, c, bearer, "/disbursements", q)
}

// GetDisbursement fetches a single payout by id.
func (c *Client) GetDisbursement(ctx context.Context, bearer, id string) (*domain.Disbursement, error) {
	return getResource[domain.Disbursement](ctx, c, bearer, "/disbursements/"+id, id)
}

// ApproveDisbursement triggers the payout approval action upstream and
// returns the updated record.
func (c *Client) ApproveDisbursement(ctx context.Context, bearer, id string) (*domain.Disbursement, error) {
	if id == "" {
		return nil, errors.New("gateway: disbursement id is required")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/disbursements/"+id+"/approve", bearer, nil, nil)
	if err != nil {
		return nil, err
	}

	var d domain.Disbursement
	if err := c.do(c.http, req, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

// ListMerchants returns a page of merchants.
func (c *Client) ListMerchants(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.Merchant], error) {
	return listPage[domain.Merchant](ctx, c, bearer, "/merchants", q)
}

// GetMerchant fetches a single merchant by id.
func (c *Client) GetMerchant(ctx context.Context, bearer, id string) (*domain.Merchant, error) {
	return getResource[domain.Merchant](ctx, c, bearer, "/merchants/"+id, id)
}

// ListAuditLogs returns a page of the gateway audit trail. Audit queries can
// scan long windows upstream, so they run on the long-timeout client.
func (c *Client) ListAuditLogs(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.AuditLog], error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/audit-logs", bearer, pageQueryValues(q), nil)
	if err != nil {
		return nil, err
	}

	var page domain.Page[domain.AuditLog]
	if err := c.do(c.long, req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func listPage[T any](ctx context.Context, c *Client, bearer, path string, q domain.PageQuery) (*domain.Page[T], error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, bearer, pageQueryValues(q), nil)
	if err != nil {
		return nil, err
	}

	var page domain.Page[T]
	if err := c.do(c.http, req, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func getResource[T any](ctx context.Context, c *Client, bearer, path, id string) (*T, error) {
	if id == "" {
		return nil, errors.New("gateway: resource id is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, bearer, nil, nil)
	if err != nil {
		return nil, err
	}

	var resource T
	if err := c.do(c.http, req, &resource); err != nil {
		return nil, err
	}

	return &resource, nil
}
