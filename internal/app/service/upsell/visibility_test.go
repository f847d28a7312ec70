package upsell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/types"
)

func TestApplyVisibilityEffect_SetsFlagAndExpiryTogether(t *testing.T) {
	expires := time.Now().Add(30 * 24 * time.Hour)
	listing := &models.Listing{}

	require.NoError(t, ApplyVisibilityEffect(listing, types.UpsellTypeFeatured, expires))

	require.True(t, listing.IsFeatured)
	require.NotNil(t, listing.FeaturedExpiresAt)
	require.True(t, listing.FeaturedExpiresAt.Equal(expires))
}

func TestApplyVisibilityEffect_LeavesOtherFlagsUntouched(t *testing.T) {
	priorityExpires := time.Now().Add(7 * 24 * time.Hour)
	listing := &models.Listing{
		IsPriority:        true,
		PriorityExpiresAt: &priorityExpires,
	}

	featuredExpires := time.Now().Add(30 * 24 * time.Hour)
	require.NoError(t, ApplyVisibilityEffect(listing, types.UpsellTypeFeatured, featuredExpires))

	// A listing may hold a featured and a priority boost at the same time.
	require.True(t, listing.IsPriority)
	require.NotNil(t, listing.PriorityExpiresAt)
	require.True(t, listing.PriorityExpiresAt.Equal(priorityExpires))
	require.True(t, listing.IsFeatured)
	require.False(t, listing.IsSponsored)
	require.False(t, listing.IsPremium)
	require.Nil(t, listing.SponsoredExpiresAt)
	require.Nil(t, listing.PremiumExpiresAt)
}

func TestApplyVisibilityEffect_UnknownTypeRejected(t *testing.T) {
	err := ApplyVisibilityEffect(&models.Listing{}, types.UpsellType("golden"), time.Now())
	require.Error(t, err)
}

func TestBoostColumns_EveryCatalogTypeMapped(t *testing.T) {
	for _, typ := range []types.UpsellType{
		types.UpsellTypePriority,
		types.UpsellTypeFeatured,
		types.UpsellTypeSponsored,
		types.UpsellTypePremium,
	} {
		flagCol, expiresCol, err := boostColumns(typ)
		require.NoError(t, err)
		require.NotEmpty(t, flagCol)
		require.NotEmpty(t, expiresCol)
	}
}

func TestPriorityScoreExpr_RanksPremiumAboveFeatured(t *testing.T) {
	cfg := &config.Config{
		UpsellItems: []*types.UpsellItem{
			{Type: types.UpsellTypePriority, BasePricePerDay: 10, PriorityWeight: 10},
			{Type: types.UpsellTypeFeatured, BasePricePerDay: 5, PriorityWeight: 20},
			{Type: types.UpsellTypeSponsored, BasePricePerDay: 15, PriorityWeight: 30},
			{Type: types.UpsellTypePremium, BasePricePerDay: 25, PriorityWeight: 40},
		},
	}
	expr := PriorityScoreExpr(cfg)
	require.Contains(t, expr, "GREATEST(")
	require.Contains(t, expr, "CASE WHEN is_premium AND premium_expires_at > NOW() THEN 40 ELSE 0 END")
	require.Contains(t, expr, "CASE WHEN is_featured AND featured_expires_at > NOW() THEN 20 ELSE 0 END")
	require.Contains(t, expr, "CASE WHEN is_priority AND priority_expires_at > NOW() THEN 10 ELSE 0 END")
	require.Contains(t, expr, "CASE WHEN is_sponsored AND sponsored_expires_at > NOW() THEN 30 ELSE 0 END")
}

func TestPriorityScoreExpr_EmptyCatalog(t *testing.T) {
	require.Equal(t, "0", PriorityScoreExpr(&config.Config{}))
}
