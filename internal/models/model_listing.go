package models

import (
	"time"

	"github.com/quicklist/marketplace/pkg/types"

	"github.com/shopspring/decimal"
)

// Listing is a classified ad. Boost flags and their expiry timestamps are
// always written together; a true flag whose expiry has passed is ignored
// by readers (same lazy-expiry rule as Upsell).
type Listing struct {
	ID          string              `gorm:"column:id;primary_key;type:uuid" json:"id"`
	CustomerID  string              `gorm:"column:customer_id;type:varchar(64);not null;index" json:"customer_id"`
	CategoryID  *string             `gorm:"column:category_id;type:uuid;index" json:"category_id"`
	Title       string              `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string              `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal     `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Currency    string              `gorm:"column:currency;type:varchar(8);not null;default:'USD'" json:"currency"`
	City        string              `gorm:"column:city;type:varchar(128);index" json:"city"`
	Region      string              `gorm:"column:region;type:varchar(128)" json:"region"`
	Status      types.ListingStatus `gorm:"column:status;type:varchar(32);not null;default:'active'" json:"status"`

	IsPriority         bool       `gorm:"column:is_priority;not null;default:false" json:"is_priority"`
	PriorityExpiresAt  *time.Time `gorm:"column:priority_expires_at;default:null" json:"priority_expires_at"`
	IsFeatured         bool       `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	FeaturedExpiresAt  *time.Time `gorm:"column:featured_expires_at;default:null" json:"featured_expires_at"`
	IsSponsored        bool       `gorm:"column:is_sponsored;not null;default:false" json:"is_sponsored"`
	SponsoredExpiresAt *time.Time `gorm:"column:sponsored_expires_at;default:null" json:"sponsored_expires_at"`
	IsPremium          bool       `gorm:"column:is_premium;not null;default:false" json:"is_premium"`
	PremiumExpiresAt   *time.Time `gorm:"column:premium_expires_at;default:null" json:"premium_expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listing"
}

// BoostActiveAt reports whether the flag for the given type is in force.
func (l *Listing) BoostActiveAt(t types.UpsellType, now time.Time) bool {
	flag, expiresAt := l.boostState(t)
	return flag && expiresAt != nil && expiresAt.After(now)
}

func (l *Listing) boostState(t types.UpsellType) (bool, *time.Time) {
	switch t {
	case types.UpsellTypePriority:
		return l.IsPriority, l.PriorityExpiresAt
	case types.UpsellTypeFeatured:
		return l.IsFeatured, l.FeaturedExpiresAt
	case types.UpsellTypeSponsored:
		return l.IsSponsored, l.SponsoredExpiresAt
	case types.UpsellTypePremium:
		return l.IsPremium, l.PremiumExpiresAt
	}
	return false, nil
}
