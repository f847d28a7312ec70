package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/response"
)

// CustomerIDKey is where AuthMiddleware stores the authenticated customer id
// in gin.Context and the request context.
const CustomerIDKey = "customer_id"

// AuthMiddleware validates a Bearer JWT (HS256) and injects the customer id
// (token subject) into the request scope. Requests without a valid token are
// rejected with an unauthenticated envelope.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "missing bearer token"))
			return
		}

		claims := &jwt.StandardClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !parsed.Valid || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeUnauthenticated, "invalid token"))
			return
		}

		c.Set(CustomerIDKey, claims.Subject)
		ctx := context.WithValue(c.Request.Context(), CustomerIDKey, claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CustomerID returns the authenticated customer id set by AuthMiddleware.
func CustomerID(c *gin.Context) (string, bool) {
	v, ok := c.Get(CustomerIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
