package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/internal/models"
	"github.com/quicklist/marketplace/pkg/types"
)

func pendingOrder() *models.ServiceOrder {
	return &models.ServiceOrder{ID: "o1", BuyerID: "buyer", SellerID: "seller", Status: types.OrderStatusPending}
}

func TestAuthorizeTransition_SellerAccepts(t *testing.T) {
	require.NoError(t, authorizeTransition(pendingOrder(), "seller", types.OrderStatusAccepted))
}

func TestAuthorizeTransition_BuyerCannotAccept(t *testing.T) {
	err := authorizeTransition(pendingOrder(), "buyer", types.OrderStatusAccepted)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeTransition_StrangerRejected(t *testing.T) {
	err := authorizeTransition(pendingOrder(), "somebody-else", types.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeTransition_CompleteRequiresAccepted(t *testing.T) {
	err := authorizeTransition(pendingOrder(), "seller", types.OrderStatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)

	row := pendingOrder()
	row.Status = types.OrderStatusAccepted
	require.NoError(t, authorizeTransition(row, "seller", types.OrderStatusCompleted))
}

func TestAuthorizeTransition_EitherPartyCancels(t *testing.T) {
	require.NoError(t, authorizeTransition(pendingOrder(), "buyer", types.OrderStatusCancelled))
	require.NoError(t, authorizeTransition(pendingOrder(), "seller", types.OrderStatusCancelled))

	row := pendingOrder()
	row.Status = types.OrderStatusCompleted
	err := authorizeTransition(row, "buyer", types.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAuthorizeTransition_CancelledIsTerminal(t *testing.T) {
	row := pendingOrder()
	row.Status = types.OrderStatusCancelled
	err := authorizeTransition(row, "seller", types.OrderStatusAccepted)
	require.ErrorIs(t, err, ErrInvalidTransition)
}
