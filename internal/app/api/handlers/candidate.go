package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quicklist/marketplace/internal/app/api/middleware"
	"github.com/quicklist/marketplace/internal/app/service/candidate"
	"github.com/quicklist/marketplace/pkg/response"
)

func candidateErrCode(err error) response.APIResponseCode {
	if errors.Is(err, candidate.ErrNotFound) {
		return response.APIResponseCodeNotFound
	}
	return response.APIResponseCodeError
}

// @Summary      Upsert my candidate profile
// @Tags         Candidate
// @Accept       json
// @Produce      json
// @Param        request body candidate.UpsertRequest true "Profile"
// @Success      200  {object}  response.APIResponse[models.CandidateProfile]
// @Router       /api/v1/candidates/me [put]
func ApiUpsertMyProfile(svc *candidate.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		var req candidate.UpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Upsert(c.Request.Context(), customerID, &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](candidateErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get my candidate profile
// @Tags         Candidate
// @Produce      json
// @Success      200  {object}  response.APIResponse[models.CandidateProfile]
// @Router       /api/v1/candidates/me [get]
func ApiGetMyProfile(svc *candidate.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		res, err := svc.GetOwn(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](candidateErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Delete my candidate profile
// @Tags         Candidate
// @Produce      json
// @Success      200  {object}  response.APIResponse[any]
// @Router       /api/v1/candidates/me [delete]
func ApiDeleteMyProfile(svc *candidate.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := middleware.CustomerID(c)
		if !ok {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "no session"))
			return
		}
		if err := svc.Delete(c.Request.Context(), customerID); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](candidateErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Get public candidate profile
// @Tags         Candidate
// @Produce      json
// @Param        id path string true "Profile id"
// @Success      200  {object}  response.APIResponse[models.CandidateProfile]
// @Router       /api/v1/candidates/{id} [get]
func ApiGetCandidate(svc *candidate.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.GetPublic(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](candidateErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterCandidateRoutes(r gin.IRouter, svc *candidate.Service) {
	r.PUT("/candidates/me", ApiUpsertMyProfile(svc))
	r.GET("/candidates/me", ApiGetMyProfile(svc))
	r.DELETE("/candidates/me", ApiDeleteMyProfile(svc))
}

func RegisterPublicCandidateRoutes(r gin.IRouter, svc *candidate.Service) {
	r.GET("/candidates/:id", ApiGetCandidate(svc))
}
