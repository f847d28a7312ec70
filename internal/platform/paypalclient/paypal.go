package paypalclient

import (
	"context"
	"fmt"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/quicklist/marketplace/pkg/config"
)

// CreateOrderRequest asks the provider to open an order for a single amount.
type CreateOrderRequest struct {
	ReferenceID string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// OrderRef is the provider-side order handle plus the buyer approval URL.
type OrderRef struct {
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
}

// Provider is the narrow payment-provider contract the upsell lifecycle
// consumes: create an order, get back an approval redirect. Nothing more.
type Provider interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderRef, error)
}

type payPalProvider struct {
	client *paypal.Client
	cfg    *cfgpkg.Config
	log    *zap.SugaredLogger
}

func NewProvider(cfg *cfgpkg.Config, log *zap.SugaredLogger) (Provider, error) {
	if cfg.PayPal.ClientID == "" || cfg.PayPal.Secret == "" {
		log.Warnw("paypal credentials missing, order creation will fail until configured")
		return &payPalProvider{cfg: cfg, log: log}, nil
	}
	base := paypal.APIBaseSandBox
	if cfg.PayPal.IsProd {
		base = paypal.APIBaseLive
	}
	c, err := paypal.NewClient(cfg.PayPal.ClientID, cfg.PayPal.Secret, base)
	if err != nil {
		return nil, fmt.Errorf("failed to init paypal client: %w", err)
	}
	return &payPalProvider{client: c, cfg: cfg, log: log}, nil
}

func (p *payPalProvider) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderRef, error) {
	if p.client == nil {
		return nil, fmt.Errorf("paypal client not configured")
	}
	if p.client.Token == nil {
		if _, err := p.client.GetAccessToken(ctx); err != nil {
			return nil, fmt.Errorf("failed to get paypal access token: %w", err)
		}
	}

	units := []paypal.PurchaseUnitRequest{{
		ReferenceID: req.ReferenceID,
		Description: req.Description,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: req.Currency,
			Value:    req.Amount.StringFixed(2),
		},
	}}
	appCtx := &paypal.ApplicationContext{
		ReturnURL: p.cfg.PayPal.ReturnURL,
		CancelURL: p.cfg.PayPal.CancelURL,
	}
	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to create paypal order: %w", err)
	}

	ref := &OrderRef{OrderID: order.ID}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			ref.ApprovalURL = link.Href
			break
		}
	}
	if ref.ApprovalURL == "" {
		p.log.Warnw("paypal order has no approval link", "order_id", order.ID, "status", order.Status)
	}
	return ref, nil
}

var Module = fx.Options(
	fx.Provide(NewProvider),
)
