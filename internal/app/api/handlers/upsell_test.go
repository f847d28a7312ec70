package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/internal/app/api/middleware"
	"github.com/quicklist/marketplace/internal/app/service/upsell"
	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/internal/platform/paypalclient"
	"github.com/quicklist/marketplace/pkg/types"
)

type stubUpsellMgr struct {
	purchaseErr error
	completeErr error
}

func (s *stubUpsellMgr) Purchase(_ context.Context, customerID string, req *upsell.PurchaseRequest) (*upsell.PurchaseResult, error) {
	if s.purchaseErr != nil {
		return nil, s.purchaseErr
	}
	now := time.Now()
	return &upsell.PurchaseResult{
		Upsell: &models.Upsell{
			ID:            "up-1",
			ListingID:     req.ListingID,
			CustomerID:    customerID,
			UpsellType:    req.UpsellType,
			Price:         decimal.RequireFromString("50.00"),
			DurationDays:  req.DurationDays,
			StartsAt:      now,
			ExpiresAt:     now.AddDate(0, 0, req.DurationDays),
			Status:        types.UpsellStatusPending,
			PaymentStatus: types.PaymentStatusPending,
		},
		PaymentReference: &paypalclient.OrderRef{OrderID: "pp-1", ApprovalURL: "https://paypal.example/approve/pp-1"},
	}, nil
}

func (s *stubUpsellMgr) CompletePayment(_ context.Context, _ string, req *upsell.CompletePaymentRequest) (*upsell.CompletePaymentResult, error) {
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	return &upsell.CompletePaymentResult{
		Upsell:  &models.Upsell{ID: req.UpsellID, Status: types.UpsellStatusActive, PaymentStatus: types.PaymentStatusCompleted},
		Listing: &models.Listing{ID: "l-1", IsFeatured: true},
	}, nil
}

func (s *stubUpsellMgr) Cancel(_ context.Context, _ string, upsellID string) (*models.Upsell, error) {
	return &models.Upsell{ID: upsellID, Status: types.UpsellStatusCancelled}, nil
}

func (s *stubUpsellMgr) ListByCustomer(_ context.Context, _ string, _ *upsell.ListRequest) (*upsell.ListResult, error) {
	return &upsell.ListResult{Items: []*models.Upsell{}, Total: 0}, nil
}

func (s *stubUpsellMgr) Stats(_ context.Context, _ string) (*upsell.StatsResult, error) {
	return &upsell.StatsResult{TotalSpent: decimal.RequireFromString("360.00"), ActiveUpsellCount: 1, TotalUpsellCount: 3}, nil
}

func authedRouter(mgr upsell.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.CustomerIDKey, "cust-1") })
	RegisterUpsellRoutes(r, mgr)
	return r
}

func TestApiPurchaseUpsell_ReturnsPaymentReference(t *testing.T) {
	r := authedRouter(&stubUpsellMgr{})

	body, _ := json.Marshal(map[string]any{"listing_id": "l-1", "upsell_type": "featured", "duration_days": 10})
	req := httptest.NewRequest(http.MethodPost, "/upsells", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":0`)
	require.Contains(t, w.Body.String(), "approval_url")
}

func TestApiPurchaseUpsell_MissingFieldsRejected(t *testing.T) {
	r := authedRouter(&stubUpsellMgr{})

	req := httptest.NewRequest(http.MethodPost, "/upsells", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)
}

func TestApiPurchaseUpsell_ConflictMapped(t *testing.T) {
	r := authedRouter(&stubUpsellMgr{purchaseErr: upsell.ErrConflictActiveUpsell})

	body, _ := json.Marshal(map[string]any{"listing_id": "l-1", "upsell_type": "featured", "duration_days": 10})
	req := httptest.NewRequest(http.MethodPost, "/upsells", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40900`)
}

func TestApiPurchaseUpsell_ForbiddenMapped(t *testing.T) {
	r := authedRouter(&stubUpsellMgr{purchaseErr: upsell.ErrForbidden})

	body, _ := json.Marshal(map[string]any{"listing_id": "l-1", "upsell_type": "featured", "duration_days": 10})
	req := httptest.NewRequest(http.MethodPost, "/upsells", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40300`)
}

func TestApiCompleteUpsellPayment_TransactionMismatchMapped(t *testing.T) {
	r := authedRouter(&stubUpsellMgr{completeErr: upsell.ErrTransactionMismatch})

	body, _ := json.Marshal(map[string]any{"payment_transaction_id": "tx-2"})
	req := httptest.NewRequest(http.MethodPost, "/upsells/up-1/complete_payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40900`)
}

func TestApiUpsellStats_ReturnsTotals(t *testing.T) {
	r := authedRouter(&stubUpsellMgr{})

	req := httptest.NewRequest(http.MethodGet, "/upsells/stats", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "total_spent")
	require.Contains(t, w.Body.String(), `"active_upsell_count":1`)
	require.Contains(t, w.Body.String(), `"total_upsell_count":3`)
}
