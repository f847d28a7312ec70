package models

import (
	"time"

	"github.com/quicklist/marketplace/pkg/types"

	"github.com/shopspring/decimal"
)

// ServiceOrder is a transaction between a buyer and the seller of a listing.
// Amount is snapshotted from the listing at creation time.
type ServiceOrder struct {
	ID        string            `gorm:"column:id;primary_key;type:uuid" json:"id"`
	ListingID string            `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	BuyerID   string            `gorm:"column:buyer_id;type:varchar(64);not null;index" json:"buyer_id"`
	SellerID  string            `gorm:"column:seller_id;type:varchar(64);not null;index" json:"seller_id"`
	Amount    decimal.Decimal   `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Currency  string            `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Status    types.OrderStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`

	AcceptedAt  *time.Time `gorm:"column:accepted_at;default:null" json:"accepted_at"`
	CompletedAt *time.Time `gorm:"column:completed_at;default:null" json:"completed_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at;default:null" json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceOrder) TableName() string {
	return "service_order"
}
