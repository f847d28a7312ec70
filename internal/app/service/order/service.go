package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/logctx"
	"github.com/quicklist/marketplace/pkg/tool"
	"github.com/quicklist/marketplace/pkg/types"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrListingNotFound   = errors.New("listing not found")
	ErrForbidden         = errors.New("caller is not a party to this order")
	ErrSelfPurchase      = errors.New("cannot order your own listing")
	ErrInvalidTransition = errors.New("order status does not allow this transition")
)

type CreateRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func New(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Create opens a pending order between the caller (buyer) and the listing's
// owner. Amount and currency are snapshotted from the listing so later price
// edits do not change agreed orders.
func (s *Service) Create(ctx context.Context, buyerID string, req *CreateRequest) (*models.ServiceOrder, error) {
	var row *models.ServiceOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "id = ?", req.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrListingNotFound
			}
			return fmt.Errorf("failed to load listing: %w", err)
		}
		if listing.CustomerID == buyerID {
			return ErrSelfPurchase
		}

		row = &models.ServiceOrder{
			ID:        tool.GenerateUUIDV7(),
			ListingID: listing.ID,
			BuyerID:   buyerID,
			SellerID:  listing.CustomerID,
			Amount:    listing.Price,
			Currency:  listing.Currency,
			Status:    types.OrderStatusPending,
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("service order created",
		"order_id", row.ID, "listing_id", row.ListingID, "buyer_id", buyerID)
	return row, nil
}

// Accept: seller confirms a pending order.
func (s *Service) Accept(ctx context.Context, customerID string, orderID string) (*models.ServiceOrder, error) {
	return s.transition(ctx, customerID, orderID, types.OrderStatusAccepted)
}

// Complete: seller marks an accepted order as delivered.
func (s *Service) Complete(ctx context.Context, customerID string, orderID string) (*models.ServiceOrder, error) {
	return s.transition(ctx, customerID, orderID, types.OrderStatusCompleted)
}

// Cancel: either party backs out before completion.
func (s *Service) Cancel(ctx context.Context, customerID string, orderID string) (*models.ServiceOrder, error) {
	return s.transition(ctx, customerID, orderID, types.OrderStatusCancelled)
}

func (s *Service) transition(ctx context.Context, customerID string, orderID string, target types.OrderStatus) (*models.ServiceOrder, error) {
	var row models.ServiceOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&row, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load order: %w", err)
		}
		if err := authorizeTransition(&row, customerID, target); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{"status": target}
		switch target {
		case types.OrderStatusAccepted:
			row.AcceptedAt = lo.ToPtr(now)
			updates["accepted_at"] = now
		case types.OrderStatusCompleted:
			row.CompletedAt = lo.ToPtr(now)
			updates["completed_at"] = now
		case types.OrderStatusCancelled:
			row.CancelledAt = lo.ToPtr(now)
			updates["cancelled_at"] = now
		}
		row.Status = target
		return tx.Model(&models.ServiceOrder{}).Where("id = ?", row.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// authorizeTransition checks both the caller's role and the state machine:
//
//	pending -> accepted (seller) -> completed (seller)
//	pending|accepted -> cancelled (buyer or seller)
func authorizeTransition(row *models.ServiceOrder, customerID string, target types.OrderStatus) error {
	isBuyer := row.BuyerID == customerID
	isSeller := row.SellerID == customerID
	if !isBuyer && !isSeller {
		return ErrForbidden
	}

	switch target {
	case types.OrderStatusAccepted:
		if !isSeller {
			return ErrForbidden
		}
		if row.Status != types.OrderStatusPending {
			return ErrInvalidTransition
		}
	case types.OrderStatusCompleted:
		if !isSeller {
			return ErrForbidden
		}
		if row.Status != types.OrderStatusAccepted {
			return ErrInvalidTransition
		}
	case types.OrderStatusCancelled:
		if row.Status != types.OrderStatusPending && row.Status != types.OrderStatusAccepted {
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}
	return nil
}

// ListMine returns orders where the caller is buyer or seller, newest first.
func (s *Service) ListMine(ctx context.Context, customerID string) ([]*models.ServiceOrder, error) {
	var rows []*models.ServiceOrder
	err := s.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", customerID, customerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return rows, nil
}
