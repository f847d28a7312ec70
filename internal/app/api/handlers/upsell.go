package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quicklist/marketplace/internal/app/api/middleware"
	"github.com/quicklist/marketplace/internal/app/service/pricing"
	"github.com/quicklist/marketplace/internal/app/service/upsell"
	"github.com/quicklist/marketplace/pkg/response"
	"github.com/quicklist/marketplace/pkg/types"
)

// upsellErrCode maps lifecycle errors onto envelope codes.
func upsellErrCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, upsell.ErrForbidden):
		return response.APIResponseCodeForbidden
	case errors.Is(err, upsell.ErrNotFound), errors.Is(err, upsell.ErrListingNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, upsell.ErrConflictActiveUpsell), errors.Is(err, upsell.ErrTransactionMismatch):
		return response.APIResponseCodeConflict
	case errors.Is(err, upsell.ErrAlreadyExpired),
		errors.Is(err, pricing.ErrInvalidUpsellType),
		errors.Is(err, pricing.ErrInvalidDuration):
		return response.APIResponseCodeBadRequest
	}
	return response.APIResponseCodeError
}

// @Summary      Purchase upsell
// @Description  Creates a pending boost for one of the caller's listings and returns a payment approval reference when the provider is reachable.
// @Tags         Upsell
// @Accept       json
// @Produce      json
// @Param        request body upsell.PurchaseRequest true "Purchase request"
// @Success      200  {object}  response.APIResponse[upsell.PurchaseResult]
// @Router       /api/v1/upsells [post]
func ApiPurchaseUpsell(mgr upsell.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		var req upsell.PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := mgr.Purchase(c.Request.Context(), customerID, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](upsellErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type completePaymentBody struct {
	TransactionID string `json:"payment_transaction_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

// @Summary      Complete upsell payment
// @Description  Payment-completion callback: activates the boost, mutates the listing and appends a revenue entry atomically. Replays with the same transaction id are no-ops.
// @Tags         Upsell
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Upsell id"
// @Param        request body handlers.completePaymentBody true "Completion payload"
// @Success      200  {object}  response.APIResponse[upsell.CompletePaymentResult]
// @Router       /api/v1/upsells/{id}/complete_payment [post]
func ApiCompleteUpsellPayment(mgr upsell.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		var body completePaymentBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		req := &upsell.CompletePaymentRequest{
			UpsellID:      c.Param("id"),
			TransactionID: body.TransactionID,
		}
		if body.PaymentMethod != "" {
			req.PaymentMethod = types.PaymentMethod(body.PaymentMethod)
		}
		res, err := mgr.CompletePayment(c.Request.Context(), customerID, req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](upsellErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Cancel upsell
// @Description  Cancels an unexpired boost. Listing visibility flags are left to lapse at natural expiry.
// @Tags         Upsell
// @Produce      json
// @Param        id path string true "Upsell id"
// @Success      200  {object}  response.APIResponse[models.Upsell]
// @Router       /api/v1/upsells/{id}/cancel [post]
func ApiCancelUpsell(mgr upsell.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		res, err := mgr.Cancel(c.Request.Context(), customerID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](upsellErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List my upsells
// @Tags         Upsell
// @Produce      json
// @Success      200  {object}  response.APIResponse[upsell.ListResult]
// @Router       /api/v1/upsells [get]
func ApiListMyUpsells(mgr upsell.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		req := &upsell.ListRequest{From: queryInt(c, "from", 0), Size: queryInt(c, "size", 20)}
		res, err := mgr.ListByCustomer(c.Request.Context(), customerID, req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](upsellErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      My upsell stats
// @Tags         Upsell
// @Produce      json
// @Success      200  {object}  response.APIResponse[upsell.StatsResult]
// @Router       /api/v1/upsells/stats [get]
func ApiUpsellStats(mgr upsell.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		res, err := mgr.Stats(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](upsellErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterUpsellRoutes(r gin.IRouter, mgr upsell.Manager) {
	r.POST("/upsells", ApiPurchaseUpsell(mgr))
	r.GET("/upsells", ApiListMyUpsells(mgr))
	r.GET("/upsells/stats", ApiUpsellStats(mgr))
	r.POST("/upsells/:id/complete_payment", ApiCompleteUpsellPayment(mgr))
	r.POST("/upsells/:id/cancel", ApiCancelUpsell(mgr))
}
