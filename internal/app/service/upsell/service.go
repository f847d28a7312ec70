package upsell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quicklist/marketplace/internal/app/service/pricing"
	"github.com/quicklist/marketplace/internal/app/service/revenue"
	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/internal/platform/paypalclient"
	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/logctx"
	"github.com/quicklist/marketplace/pkg/tool"
	"github.com/quicklist/marketplace/pkg/types"
)

type Service struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	db       *gorm.DB
	calc     *pricing.Calculator
	provider paypalclient.Provider
	recorder *revenue.Recorder
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB, calc *pricing.Calculator, provider paypalclient.Provider, recorder *revenue.Recorder) Manager {
	return &Service{cfg: cfg, log: log, db: db, calc: calc, provider: provider, recorder: recorder}
}

// Purchase creates a pending upsell and asks the payment provider for an
// approval reference. The provider call happens after the transaction
// commits: its failure never rolls the record back, the purchase simply
// returns a nil reference and the record waits for payment.
func (s *Service) Purchase(ctx context.Context, customerID string, req *PurchaseRequest) (*PurchaseResult, error) {
	price, err := s.calc.Price(req.UpsellType, req.DurationDays)
	if err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = types.PaymentMethodPayPal
	}

	now := time.Now()
	up := &models.Upsell{
		ID:            tool.GenerateUUIDV7(),
		ListingID:     req.ListingID,
		CustomerID:    customerID,
		UpsellType:    req.UpsellType,
		Price:         price,
		DurationDays:  req.DurationDays,
		StartsAt:      now,
		ExpiresAt:     now.AddDate(0, 0, req.DurationDays),
		Status:        types.UpsellStatusPending,
		PaymentStatus: types.PaymentStatusPending,
		PaymentMethod: method,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the listing row so the conflict check below cannot race with
		// a concurrent purchase or activation for the same listing.
		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", req.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("failed to load listing: %w", err)
		}
		if listing.CustomerID != customerID {
			return ErrForbidden
		}

		var existing []*models.Upsell
		if err := tx.
			Where("listing_id = ? AND upsell_type = ? AND status = ?",
				req.ListingID, req.UpsellType, types.UpsellStatusActive).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to check active upsells: %w", err)
		}
		if hasActiveConflict(existing, now) {
			return ErrConflictActiveUpsell
		}

		return tx.Create(up).Error
	})
	if err != nil {
		return nil, err
	}

	result := &PurchaseResult{Upsell: up}
	ref, err := s.provider.CreateOrder(ctx, &paypalclient.CreateOrderRequest{
		ReferenceID: up.ID,
		Amount:      price,
		Currency:    s.cfg.PayPal.Currency,
		Description: fmt.Sprintf("%s boost (%d days) for listing %s", req.UpsellType, req.DurationDays, req.ListingID),
	})
	if err != nil {
		// Tolerated: the pending record stays, payment can be retried.
		logctx.FromCtx(ctx, s.log).Warnw("payment provider order creation failed",
			"upsell_id", up.ID, "method", method, "err", err)
		return result, nil
	}
	result.PaymentReference = ref
	return result, nil
}

// CompletePayment transitions pending -> active in one transaction covering
// the record update, the listing visibility mutation and the revenue entry.
// Replaying the same transaction id is a no-op; a different id on an
// already-completed record is rejected.
func (s *Service) CompletePayment(ctx context.Context, customerID string, req *CompletePaymentRequest) (*CompletePaymentResult, error) {
	result := &CompletePaymentResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var up models.Upsell
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&up, "id = ?", req.UpsellID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load upsell: %w", err)
		}

		var listing models.Listing
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&listing, "id = ?", up.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("failed to load listing: %w", err)
		}
		if listing.CustomerID != customerID {
			return ErrForbidden
		}

		outcome, err := activationOutcomeFor(&up, req.TransactionID)
		if err != nil {
			return err
		}
		if outcome == activationReplay {
			// Confirmation we already processed; nothing to write again.
			result.Upsell = &up
			result.Listing = &listing
			return nil
		}

		method := req.PaymentMethod
		if method == "" {
			method = up.PaymentMethod
		}
		if method == "" {
			method = types.PaymentMethodPayPal
		}

		now := time.Now()
		// Expiry is lazy, so a lapsed boost for this (listing, type) pair may
		// still sit at stored status 'active' and occupy the partial unique
		// slot. Rewrite it first or activating the new record violates
		// uniq_active_listing_upsell and rolls everything back.
		if err := tx.Model(&models.Upsell{}).
			Where("listing_id = ? AND upsell_type = ? AND status = ? AND expires_at <= ?",
				up.ListingID, up.UpsellType, types.UpsellStatusActive, now).
			Update("status", types.UpsellStatusExpired).Error; err != nil {
			return fmt.Errorf("failed to expire lapsed upsells: %w", err)
		}

		up.Status = types.UpsellStatusActive
		up.PaymentStatus = types.PaymentStatusCompleted
		up.PaymentTransactionID = &req.TransactionID
		up.PaymentDetails = datatypes.NewJSONType(&models.PaymentDetails{
			Method:   method,
			Amount:   up.Price,
			Currency: s.cfg.PayPal.Currency,
			PaidAt:   now,
		})
		if err := tx.Save(&up).Error; err != nil {
			return fmt.Errorf("failed to activate upsell: %w", err)
		}

		if err := ApplyVisibilityEffect(&listing, up.UpsellType, up.ExpiresAt); err != nil {
			return err
		}
		flagCol, expiresCol, err := boostColumns(up.UpsellType)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Listing{}).Where("id = ?", listing.ID).
			Updates(map[string]any{flagCol: true, expiresCol: up.ExpiresAt}).Error; err != nil {
			return fmt.Errorf("failed to apply listing visibility effect: %w", err)
		}

		if err := s.recorder.Record(ctx, tx, &models.RevenueEntry{
			EntryType:     models.RevenueEntryTypeUpsell,
			UpsellID:      up.ID,
			CustomerID:    customerID,
			Amount:        up.Price,
			Currency:      s.cfg.PayPal.Currency,
			PaymentMethod: method,
			TransactionID: req.TransactionID,
			RecordedAt:    now,
		}); err != nil {
			return err
		}

		result.Upsell = &up
		result.Listing = &listing
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("upsell payment completed",
		"upsell_id", result.Upsell.ID, "listing_id", result.Listing.ID,
		"type", result.Upsell.UpsellType, "transaction_id", req.TransactionID)
	return result, nil
}

// hasActiveConflict reports whether any of the rows still holds the active
// slot for its (listing, type) pair. Stored status is not enough: a lapsed
// boost keeps 'active' on disk but frees the slot.
func hasActiveConflict(existing []*models.Upsell, now time.Time) bool {
	for _, row := range existing {
		if row.ActiveAt(now) {
			return true
		}
	}
	return false
}

type activationOutcome int

const (
	activationProceed activationOutcome = iota
	activationReplay
)

// activationOutcomeFor decides what a payment confirmation does to a record:
// activate it, treat the call as a replay of one already processed, or reject
// a second confirmation carrying a different transaction id.
func activationOutcomeFor(up *models.Upsell, transactionID string) (activationOutcome, error) {
	if up.PaymentStatus != types.PaymentStatusCompleted {
		return activationProceed, nil
	}
	if up.PaymentTransactionID != nil && *up.PaymentTransactionID == transactionID {
		return activationReplay, nil
	}
	return activationProceed, ErrTransactionMismatch
}

// Cancel marks an unexpired upsell cancelled. Listing visibility flags are
// left in place until natural expiry; the boost was paid for.
func (s *Service) Cancel(ctx context.Context, customerID string, upsellID string) (*models.Upsell, error) {
	var up models.Upsell
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&up, "id = ?", upsellID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load upsell: %w", err)
		}
		if up.CustomerID != customerID {
			return ErrForbidden
		}
		if up.Status == types.UpsellStatusCancelled {
			return nil
		}
		now := time.Now()
		if !up.ExpiresAt.After(now) || up.Status == types.UpsellStatusExpired {
			return ErrAlreadyExpired
		}

		up.Status = types.UpsellStatusCancelled
		if err := tx.Model(&models.Upsell{}).Where("id = ?", up.ID).
			Update("status", types.UpsellStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel upsell: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// ListByCustomer returns the customer's upsells newest first. Stored status
// is normalized through the lazy-expiry predicate before returning.
func (s *Service) ListByCustomer(ctx context.Context, customerID string, req *ListRequest) (*ListResult, error) {
	if req == nil {
		req = &ListRequest{}
	}
	if req.Size <= 0 {
		req.Size = 20
	}
	if req.From < 0 {
		req.From = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Upsell{}).Where("customer_id = ?", customerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count upsells: %w", err)
	}

	var rows []*models.Upsell
	if err := q.Order("created_at DESC").Offset(req.From).Limit(req.Size).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list upsells: %w", err)
	}

	now := time.Now()
	for _, row := range rows {
		row.Status = row.EffectiveStatusAt(now)
	}
	return &ListResult{Items: rows, Total: total}, nil
}

func (s *Service) Stats(ctx context.Context, customerID string) (*StatsResult, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Model(&models.Upsell{}).
		Select("COALESCE(SUM(price), 0) AS total").
		Where("customer_id = ? AND payment_status = ?", customerID, types.PaymentStatusCompleted).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to sum spend: %w", err)
	}

	now := time.Now()
	var active int64
	if err := s.db.WithContext(ctx).Model(&models.Upsell{}).
		Where("customer_id = ? AND status = ? AND expires_at > ?", customerID, types.UpsellStatusActive, now).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active upsells: %w", err)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Upsell{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count upsells: %w", err)
	}

	return &StatsResult{TotalSpent: row.Total, ActiveUpsellCount: active, TotalUpsellCount: total}, nil
}
