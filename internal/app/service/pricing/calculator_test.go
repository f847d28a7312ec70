package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/types"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func testConfig() *config.Config {
	return &config.Config{
		UpsellItems: []*types.UpsellItem{
			{Type: types.UpsellTypePriority, BasePricePerDay: 10, PriorityWeight: 10},
			{Type: types.UpsellTypeFeatured, BasePricePerDay: 5, PriorityWeight: 20},
			{Type: types.UpsellTypeSponsored, BasePricePerDay: 15, PriorityWeight: 30},
			{Type: types.UpsellTypePremium, BasePricePerDay: 25, PriorityWeight: 40},
		},
		DiscountTiers: []*types.DiscountTier{
			{MinDays: 30, PercentOff: 20},
			{MinDays: 14, PercentOff: 10},
		},
	}
}

func TestPrice_NoDiscountBelowFirstTier(t *testing.T) {
	c := NewCalculator(testConfig())
	got, err := c.Price(types.UpsellTypeFeatured, 10)
	require.NoError(t, err)
	require.Equal(t, "50.00", got.StringFixed(2))
}

func TestPrice_TenPercentTier(t *testing.T) {
	c := NewCalculator(testConfig())
	// 5 * 14 * 0.9 = 63.00
	got, err := c.Price(types.UpsellTypeFeatured, 14)
	require.NoError(t, err)
	require.Equal(t, "63.00", got.StringFixed(2))
}

func TestPrice_TwentyPercentTierAtThirtyDays(t *testing.T) {
	c := NewCalculator(testConfig())
	// 10 * 30 * 0.8 = 240.00
	got, err := c.Price(types.UpsellTypePriority, 30)
	require.NoError(t, err)
	require.Equal(t, "240.00", got.StringFixed(2))
}

func TestPrice_LongDurationKeepsDeepestTier(t *testing.T) {
	c := NewCalculator(testConfig())
	// 5 * 90 * 0.8 = 360.00
	got, err := c.Price(types.UpsellTypeFeatured, 90)
	require.NoError(t, err)
	require.Equal(t, "360.00", got.StringFixed(2))
}

func TestPrice_AllCatalogTypesMatchFormula(t *testing.T) {
	cfg := testConfig()
	c := NewCalculator(cfg)
	durations := []int{1, 7, 13, 14, 29, 30, 90, 365}
	for _, item := range cfg.UpsellItems {
		for _, days := range durations {
			got, err := c.Price(item.Type, days)
			require.NoError(t, err)

			pct := 0
			switch {
			case days >= 30:
				pct = 20
			case days >= 14:
				pct = 10
			}
			want := item.BasePrice().
				Mul(decimalFromInt(days)).
				Mul(decimalFromInt(100 - pct)).
				Div(decimalFromInt(100)).
				Round(2)
			require.True(t, want.Equal(got), "type=%s days=%d want=%s got=%s", item.Type, days, want, got)
		}
	}
}

func TestPrice_UnknownTypeRejected(t *testing.T) {
	c := NewCalculator(testConfig())
	_, err := c.Price(types.UpsellType("golden"), 10)
	require.ErrorIs(t, err, ErrInvalidUpsellType)
}

func TestPrice_ZeroDaysRejected(t *testing.T) {
	c := NewCalculator(testConfig())
	_, err := c.Price(types.UpsellTypeFeatured, 0)
	require.ErrorIs(t, err, ErrInvalidDuration)
}
