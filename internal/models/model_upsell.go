package models

import (
	"time"

	"github.com/quicklist/marketplace/pkg/types"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentDetails 支付详情快照
type PaymentDetails struct {
	Method   types.PaymentMethod `json:"method"`
	Amount   decimal.Decimal     `json:"amount"`
	Currency string              `json:"currency"`
	PaidAt   time.Time           `json:"paid_at"`
}

// Upsell is a purchased, time-bounded visibility boost for one listing.
//
// A partial unique index on (listing_id, upsell_type) WHERE status='active'
// backs the at-most-one-active-boost-per-type rule; see db.AutoMigrate.
// Stored status is not trusted for expiry: use EffectiveStatus.
type Upsell struct {
	ID         string           `gorm:"column:id;primary_key;type:uuid" json:"id"`
	ListingID  string           `gorm:"column:listing_id;type:uuid;not null;index:idx_upsell_listing_type,priority:1" json:"listing_id"`
	CustomerID string           `gorm:"column:customer_id;type:varchar(64);not null;index:idx_upsell_customer_created,priority:1" json:"customer_id"`
	UpsellType types.UpsellType `gorm:"column:upsell_type;type:varchar(32);not null;index:idx_upsell_listing_type,priority:2" json:"upsell_type"`

	Price        decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	DurationDays int             `gorm:"column:duration_days;not null" json:"duration_days"`
	StartsAt     time.Time       `gorm:"column:starts_at;not null" json:"starts_at"`
	ExpiresAt    time.Time       `gorm:"column:expires_at;not null" json:"expires_at"`

	Status        types.UpsellStatus  `gorm:"column:status;type:varchar(32);not null" json:"status"`
	PaymentStatus types.PaymentStatus `gorm:"column:payment_status;type:varchar(32);not null" json:"payment_status"`
	// PaymentMethod is the method requested at purchase time; the settled
	// method lands in PaymentDetails when the payment completes.
	PaymentMethod types.PaymentMethod `gorm:"column:payment_method;type:varchar(32);not null;default:'paypal'" json:"payment_method"`
	// PaymentTransactionID is set exactly once, when the payment completes.
	PaymentTransactionID *string                             `gorm:"column:payment_transaction_id;type:varchar(128);default:null;uniqueIndex" json:"payment_transaction_id"`
	PaymentDetails       datatypes.JSONType[*PaymentDetails] `gorm:"column:payment_details;type:jsonb;default:'{}'" json:"payment_details"`

	CreatedAt time.Time `gorm:"index:idx_upsell_customer_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Upsell) TableName() string {
	return "upsell"
}

// EffectiveStatus applies the lazy-expiry rule: a stored 'active' whose
// expires_at has passed is reported as expired even though no sweeper has
// rewritten the row.
func (u *Upsell) EffectiveStatusAt(now time.Time) types.UpsellStatus {
	if u.Status == types.UpsellStatusActive && !u.ExpiresAt.After(now) {
		return types.UpsellStatusExpired
	}
	return u.Status
}

func (u *Upsell) EffectiveStatus() types.UpsellStatus {
	return u.EffectiveStatusAt(time.Now())
}

// ActiveAt reports whether the boost is in force at the given instant.
func (u *Upsell) ActiveAt(now time.Time) bool {
	return u.EffectiveStatusAt(now) == types.UpsellStatusActive
}
