package types

import "github.com/shopspring/decimal"

type UpsellType string

const (
	UpsellTypePriority  UpsellType = "priority"
	UpsellTypeFeatured  UpsellType = "featured"
	UpsellTypeSponsored UpsellType = "sponsored"
	UpsellTypePremium   UpsellType = "premium"
)

type UpsellStatus string

const (
	UpsellStatusPending   UpsellStatus = "pending"
	UpsellStatusActive    UpsellStatus = "active"
	UpsellStatusCancelled UpsellStatus = "cancelled"
	UpsellStatusExpired   UpsellStatus = "expired"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodPayPal PaymentMethod = "paypal"
)

// UpsellItem describes one purchasable boost type. The set of items in
// config is the closed catalog; pricing rejects types outside it.
type UpsellItem struct {
	Type UpsellType `json:"type" mapstructure:"type"`
	// BasePricePerDay 每日基础价格
	BasePricePerDay float64 `json:"base_price_per_day" mapstructure:"base_price_per_day"`
	// PriorityWeight 搜索排序权重，越大越靠前
	PriorityWeight int `json:"priority_weight" mapstructure:"priority_weight"`
}

func (item *UpsellItem) BasePrice() decimal.Decimal {
	return decimal.NewFromFloat(item.BasePricePerDay)
}

// DiscountTier applies PercentOff when the purchased duration is at least
// MinDays. Tiers are evaluated highest MinDays first.
type DiscountTier struct {
	MinDays    int `json:"min_days" mapstructure:"min_days"`
	PercentOff int `json:"percent_off" mapstructure:"percent_off"`
}
