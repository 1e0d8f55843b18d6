package domain

import "time"

// Page is a single page of a remote collection, as returned by the gateway
// list endpoints. The portal never caches or re-sorts these; pagination state
// lives with the caller.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// PageQuery carries pagination and filter parameters through to the gateway.
type PageQuery struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Normalize clamps the query to sane bounds.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q
}

// Transaction mirrors the gateway's payment transaction record.
type Transaction struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	MerchantID  string    `json:"merchantId"`
	Channel     string    `json:"channel"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	SettledAt   time.Time `json:"settledAt,omitempty"`
}

// Disbursement mirrors the gateway's payout record.
type Disbursement struct {
	ID            string    `json:"id"`
	Reference     string    `json:"reference"`
	MerchantID    string    `json:"merchantId"`
	BankCode      string    `json:"bankCode"`
	AccountNumber string    `json:"accountNumber"`
	AccountName   string    `json:"accountName"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	ApprovedBy    string    `json:"approvedBy,omitempty"`
	ApprovedAt    time.Time `json:"approvedAt,omitempty"`
}

// Merchant mirrors the gateway's merchant record.
type Merchant struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffUser mirrors the gateway's back-office user record as shown in the
// user management pages.
type StaffUser struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles,omitempty"`
	UserType  string    `json:"userType,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditLog mirrors the gateway's audit trail entry.
type AuditLog struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	IP         string    `json:"ip,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
