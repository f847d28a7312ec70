package upsell

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/internal/platform/paypalclient"
	"github.com/quicklist/marketplace/pkg/types"
)

type PurchaseRequest struct {
	ListingID     string              `json:"listing_id" binding:"required"`
	UpsellType    types.UpsellType    `json:"upsell_type" binding:"required"`
	DurationDays  int                 `json:"duration_days" binding:"required,min=1"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
}

// PurchaseResult carries the pending record and, when the provider call
// succeeded, the approval reference the buyer is redirected to. A nil
// reference is not an error: the record stays pending awaiting payment.
type PurchaseResult struct {
	Upsell           *models.Upsell         `json:"upsell"`
	PaymentReference *paypalclient.OrderRef `json:"payment_reference"`
}

type CompletePaymentRequest struct {
	UpsellID      string              `json:"upsell_id"`
	TransactionID string              `json:"payment_transaction_id" binding:"required"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
}

type CompletePaymentResult struct {
	Upsell  *models.Upsell  `json:"upsell"`
	Listing *models.Listing `json:"listing"`
}

type ListRequest struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type ListResult struct {
	Items []*models.Upsell `json:"items"`
	Total int64            `json:"total"`
}

type StatsResult struct {
	TotalSpent        decimal.Decimal `json:"total_spent"`
	ActiveUpsellCount int64           `json:"active_upsell_count"`
	TotalUpsellCount  int64           `json:"total_upsell_count"`
}

// Manager owns the upsell state machine:
//
//	purchase -> pending -> (payment completed) -> active -> expired|cancelled
//
// Expiry is lazy: no sweeper rewrites rows, every read applies
// status=active AND expires_at > now().
type Manager interface {
	Purchase(ctx context.Context, customerID string, req *PurchaseRequest) (*PurchaseResult, error)
	CompletePayment(ctx context.Context, customerID string, req *CompletePaymentRequest) (*CompletePaymentResult, error)
	Cancel(ctx context.Context, customerID string, upsellID string) (*models.Upsell, error)
	ListByCustomer(ctx context.Context, customerID string, req *ListRequest) (*ListResult, error)
	Stats(ctx context.Context, customerID string) (*StatsResult, error)
}
