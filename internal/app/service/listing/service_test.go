package listing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/pkg/types"
)

func TestBoostPredicate(t *testing.T) {
	expr, err := boostPredicate(types.UpsellTypePremium)
	require.NoError(t, err)
	require.Equal(t, "is_premium AND premium_expires_at > NOW()", expr)

	_, err = boostPredicate(types.UpsellType("golden"))
	require.Error(t, err)
}
