package pricing

import (
	"errors"

	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/types"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidUpsellType is returned for types outside the configured
	// catalog. There is deliberately no fallback price.
	ErrInvalidUpsellType = errors.New("invalid upsell type")
	ErrInvalidDuration   = errors.New("duration must be at least one day")
)

// Calculator computes upsell prices from the configured catalog and
// discount tiers. Pure lookup and arithmetic, no I/O.
type Calculator struct {
	cfg *config.Config
}

func NewCalculator(cfg *config.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Price returns base_price_per_day * days reduced by the deepest discount
// tier the duration qualifies for, rounded to 2 decimal places.
func (c *Calculator) Price(t types.UpsellType, days int) (decimal.Decimal, error) {
	if days < 1 {
		return decimal.Zero, ErrInvalidDuration
	}
	item := c.cfg.GetUpsellItem(t)
	if item == nil {
		return decimal.Zero, ErrInvalidUpsellType
	}

	amount := item.BasePrice().Mul(decimal.NewFromInt(int64(days)))
	if pct := c.discountPercent(days); pct > 0 {
		factor := decimal.NewFromInt(100 - int64(pct)).Div(decimal.NewFromInt(100))
		amount = amount.Mul(factor)
	}
	return amount.Round(2), nil
}

func (c *Calculator) discountPercent(days int) int {
	for _, tier := range c.cfg.SortedDiscountTiers() {
		if days >= tier.MinDays {
			return tier.PercentOff
		}
	}
	return 0
}
