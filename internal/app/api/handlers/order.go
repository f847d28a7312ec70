package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quicklist/marketplace/internal/app/api/middleware"
	"github.com/quicklist/marketplace/internal/app/service/order"
	"github.com/quicklist/marketplace/pkg/response"
)

func orderErrCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, order.ErrForbidden):
		return response.APIResponseCodeForbidden
	case errors.Is(err, order.ErrNotFound), errors.Is(err, order.ErrListingNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrSelfPurchase):
		return response.APIResponseCodeConflict
	}
	return response.APIResponseCodeError
}

// @Summary      Create service order
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body order.CreateRequest true "Order request"
// @Success      200  {object}  response.APIResponse[models.ServiceOrder]
// @Router       /api/v1/orders [post]
func ApiCreateOrder(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		var req order.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Create(c.Request.Context(), customerID, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](orderErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func orderTransitionHandler(fn func(*gin.Context, string, string) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		res, err := fn(c, customerID, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](orderErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Accept order
// @Tags         Order
// @Produce      json
// @Param        id path string true "Order id"
// @Success      200  {object}  response.APIResponse[models.ServiceOrder]
// @Router       /api/v1/orders/{id}/accept [post]
func ApiAcceptOrder(svc *order.Service) gin.HandlerFunc {
	return orderTransitionHandler(func(c *gin.Context, customerID, id string) (any, error) {
		return svc.Accept(c.Request.Context(), customerID, id)
	})
}

// @Summary      Complete order
// @Tags         Order
// @Produce      json
// @Param        id path string true "Order id"
// @Success      200  {object}  response.APIResponse[models.ServiceOrder]
// @Router       /api/v1/orders/{id}/complete [post]
func ApiCompleteOrder(svc *order.Service) gin.HandlerFunc {
	return orderTransitionHandler(func(c *gin.Context, customerID, id string) (any, error) {
		return svc.Complete(c.Request.Context(), customerID, id)
	})
}

// @Summary      Cancel order
// @Tags         Order
// @Produce      json
// @Param        id path string true "Order id"
// @Success      200  {object}  response.APIResponse[models.ServiceOrder]
// @Router       /api/v1/orders/{id}/cancel [post]
func ApiCancelOrder(svc *order.Service) gin.HandlerFunc {
	return orderTransitionHandler(func(c *gin.Context, customerID, id string) (any, error) {
		return svc.Cancel(c.Request.Context(), customerID, id)
	})
}

// @Summary      List my orders
// @Tags         Order
// @Produce      json
// @Success      200  {object}  response.APIResponse[[]models.ServiceOrder]
// @Router       /api/v1/orders [get]
func ApiListMyOrders(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		res, err := svc.ListMine(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](orderErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterOrderRoutes(r gin.IRouter, svc *order.Service) {
	r.POST("/orders", ApiCreateOrder(svc))
	r.GET("/orders", ApiListMyOrders(svc))
	r.POST("/orders/:id/accept", ApiAcceptOrder(svc))
	r.POST("/orders/:id/complete", ApiCompleteOrder(svc))
	r.POST("/orders/:id/cancel", ApiCancelOrder(svc))
}
