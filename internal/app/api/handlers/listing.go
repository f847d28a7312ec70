package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quicklist/marketplace/internal/app/service/listing"
	"github.com/quicklist/marketplace/pkg/response"
)

// @Summary      Search listings
// @Description  Filtered, paginated listing search. Default sort is priority: active boosts rank by catalog weight, ties by newest.
// @Tags         Listing
// @Produce      json
// @Param        category_id query string false "Category id"
// @Param        city        query string false "City"
// @Param        q           query string false "Title text match"
// @Param        upsell_type query string false "Only listings with this active boost"
// @Param        sort        query string false "priority|price_low|price_high|newest|oldest"
// @Success      200  {object}  response.APIResponse[listing.SearchResponse]
// @Router       /api/v1/listings [get]
func ApiSearchListings(svc *listing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listing.SearchRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Search(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get listing
// @Tags         Listing
// @Produce      json
// @Param        id path string true "Listing id"
// @Success      200  {object}  response.APIResponse[models.Listing]
// @Router       /api/v1/listings/{id} [get]
func ApiGetListing(svc *listing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			code := response.APIResponseCodeError
			if errors.Is(err, listing.ErrNotFound) {
				code = response.APIResponseCodeNotFound
			}
			c.JSON(http.StatusOK, response.ErrorT[any](code, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterListingRoutes(r gin.IRouter, svc *listing.Service) {
	r.GET("/listings", ApiSearchListings(svc))
	r.GET("/listings/:id", ApiGetListing(svc))
}
