package port

import (
	"context"

	"github.com/nexapay/admin-portal/internal/core/domain"
)

// LoginData is the payload of a successful gateway login. The gateway has
// historically been inconsistent about whether the primary identifier arrives
// as "id" or "uid", so both are carried and callers coalesce them.
type LoginData struct {
	Token                 string   `json:"token"`
	RefreshToken          string   `json:"refreshToken,omitempty"`
	ID                    string   `json:"id,omitempty"`
	UID                   string   `json:"uid,omitempty"`
	Username              string   `json:"username"`
	Name                  string   `json:"name,omitempty"`
	Email                 string   `json:"email,omitempty"`
	Roles                 []string `json:"roles,omitempty"`
	UserType              string   `json:"userType,omitempty"`
	RequirePasswordChange bool     `json:"requirePasswordChange,omitempty"`
}

// LoginResult is the gateway's login envelope. Status false or a nil Data
// means the attempt was rejected and Message carries the reason.
type LoginResult struct {
	Status  bool       `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    *LoginData `json:"data,omitempty"`
}

// GatewayAuth is the authentication surface of the remote gateway API.
type GatewayAuth interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, bearer, userID, currentPassword, newPassword string) error
}

// GatewayUsers exposes the gateway's back-office user records.
type GatewayUsers interface {
	GetUser(ctx context.Context, bearer, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.StaffUser], error)
}

// GatewayTransactions exposes the gateway's transaction records.
type GatewayTransactions interface {
	ListTransactions(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.Transaction], error)
	GetTransaction(ctx context.Context, bearer, id string) (*domain.Transaction, error)
}

// GatewayDisbursements exposes the gateway's payout records and actions.
type GatewayDisbursements interface {
	ListDisbursements(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.Disbursement], error)
	GetDisbursement(ctx context.Context, bearer, id string) (*domain.Disbursement, error)
	ApproveDisbursement(ctx context.Context, bearer, id string) (*domain.Disbursement, error)
}

// GatewayMerchants exposes the gateway's merchant records.
type GatewayMerchants interface {
	ListMerchants(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.Merchant], error)
	GetMerchant(ctx context.Context, bearer, id string) (*domain.Merchant, error)
}

// GatewayAudit exposes the gateway's audit trail.
type GatewayAudit interface {
	ListAuditLogs(ctx context.Context, bearer string, q domain.PageQuery) (*domain.Page[domain.AuditLog], error)
}

// Gateway is the full remote backend surface the portal depends on.
type Gateway interface {
	GatewayAuth
	GatewayUsers
	GatewayTransactions
	GatewayDisbursements
	GatewayMerchants
	GatewayAudit
}
