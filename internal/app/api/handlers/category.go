package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quicklist/marketplace/internal/app/service/category"
	"github.com/quicklist/marketplace/pkg/response"
)

func categoryErrCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, category.ErrNotFound), errors.Is(err, category.ErrUnknownParent):
		return response.APIResponseCodeNotFound
	case errors.Is(err, category.ErrSlugTaken):
		return response.APIResponseCodeConflict
	}
	return response.APIResponseCodeError
}

// @Summary      Category tree
// @Tags         Category
// @Produce      json
// @Success      200  {object}  response.APIResponse[[]category.TreeNode]
// @Router       /api/v1/categories [get]
func ApiCategoryTree(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Tree(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get category by slug
// @Tags         Category
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200  {object}  response.APIResponse[models.Category]
// @Router       /api/v1/categories/{slug} [get]
func ApiGetCategory(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](categoryErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Create category
// @Tags         Category
// @Accept       json
// @Produce      json
// @Param        request body category.CreateRequest true "New category"
// @Success      200  {object}  response.APIResponse[models.Category]
// @Router       /api/v1/admin/categories [post]
func ApiCreateCategory(svc *category.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](categoryErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterCategoryRoutes(r gin.IRouter, svc *category.Service) {
	r.GET("/categories", ApiCategoryTree(svc))
	r.GET("/categories/:slug", ApiGetCategory(svc))
}

func RegisterAdminCategoryRoutes(r gin.IRouter, svc *category.Service) {
	r.POST("/categories", ApiCreateCategory(svc))
}
