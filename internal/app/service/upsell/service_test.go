package upsell

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/types"
)

func storedActiveUpsell(expiresAt time.Time) *models.Upsell {
	return &models.Upsell{
		ID:         "up-1",
		ListingID:  "l-1",
		UpsellType: types.UpsellTypeFeatured,
		Status:     types.UpsellStatusActive,
		ExpiresAt:  expiresAt,
	}
}

func TestHasActiveConflict_DuplicatePurchaseRejected(t *testing.T) {
	now := time.Now()
	rows := []*models.Upsell{storedActiveUpsell(now.Add(24 * time.Hour))}
	require.True(t, hasActiveConflict(rows, now))
}

func TestHasActiveConflict_LapsedBoostFreesSlot(t *testing.T) {
	now := time.Now()
	// Stored status still says active; the boost lapsed yesterday. Buying the
	// same type again for this listing must go through.
	rows := []*models.Upsell{storedActiveUpsell(now.Add(-24 * time.Hour))}
	require.False(t, hasActiveConflict(rows, now))
}

func TestHasActiveConflict_EmptySlot(t *testing.T) {
	require.False(t, hasActiveConflict(nil, time.Now()))
}

func TestActivationOutcome_PendingRecordActivates(t *testing.T) {
	up := &models.Upsell{Status: types.UpsellStatusPending, PaymentStatus: types.PaymentStatusPending}
	outcome, err := activationOutcomeFor(up, "tx-1")
	require.NoError(t, err)
	require.Equal(t, activationProceed, outcome)
}

func TestActivationOutcome_SameTransactionIsReplay(t *testing.T) {
	up := &models.Upsell{
		Status:               types.UpsellStatusActive,
		PaymentStatus:        types.PaymentStatusCompleted,
		PaymentTransactionID: lo.ToPtr("tx-1"),
	}
	// A replayed confirmation must not write anything: no second activation,
	// no second ledger entry.
	outcome, err := activationOutcomeFor(up, "tx-1")
	require.NoError(t, err)
	require.Equal(t, activationReplay, outcome)
}

func TestActivationOutcome_DifferentTransactionRejected(t *testing.T) {
	up := &models.Upsell{
		Status:               types.UpsellStatusActive,
		PaymentStatus:        types.PaymentStatusCompleted,
		PaymentTransactionID: lo.ToPtr("tx-1"),
	}
	_, err := activationOutcomeFor(up, "tx-2")
	require.ErrorIs(t, err, ErrTransactionMismatch)
}
