package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/pkg/types"
)

func TestUpsell_EffectiveStatus_LazyExpiry(t *testing.T) {
	now := time.Now()

	active := &Upsell{Status: types.UpsellStatusActive, ExpiresAt: now.Add(time.Hour)}
	require.Equal(t, types.UpsellStatusActive, active.EffectiveStatusAt(now))
	require.True(t, active.ActiveAt(now))

	// Stored status still says active, but the boost lapsed.
	lapsed := &Upsell{Status: types.UpsellStatusActive, ExpiresAt: now.Add(-time.Minute)}
	require.Equal(t, types.UpsellStatusExpired, lapsed.EffectiveStatusAt(now))
	require.False(t, lapsed.ActiveAt(now))
}

func TestUpsell_EffectiveStatus_NonActiveUnchanged(t *testing.T) {
	now := time.Now()
	for _, status := range []types.UpsellStatus{
		types.UpsellStatusPending,
		types.UpsellStatusCancelled,
		types.UpsellStatusExpired,
	} {
		u := &Upsell{Status: status, ExpiresAt: now.Add(-time.Hour)}
		require.Equal(t, status, u.EffectiveStatusAt(now))
	}
}

func TestListing_BoostActiveAt(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	l := &Listing{
		IsFeatured:        true,
		FeaturedExpiresAt: &future,
		IsPremium:         true,
		PremiumExpiresAt:  &past,
	}
	require.True(t, l.BoostActiveAt(types.UpsellTypeFeatured, now))
	// Flag true with a past expiry is treated as lapsed, not a data bug.
	require.False(t, l.BoostActiveAt(types.UpsellTypePremium, now))
	require.False(t, l.BoostActiveAt(types.UpsellTypeSponsored, now))
}
