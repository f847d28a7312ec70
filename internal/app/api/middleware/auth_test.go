package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	"github.com/quicklist/marketplace/pkg/config"
	"github.com/quicklist/marketplace/pkg/response"
)

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: secret}}
	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := CustomerID(c)
		c.JSON(http.StatusOK, response.OKT(map[string]string{"customer_id": id}))
	})
	return r
}

func signToken(t *testing.T, secret string, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.StandardClaims{
		Subject:   subject,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_ValidTokenInjectsCustomerID(t *testing.T) {
	r := authTestRouter("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "cust-42"))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "cust-42")
}

func TestAuthMiddleware_MissingTokenRejected(t *testing.T) {
	r := authTestRouter("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40100`)
}

func TestAuthMiddleware_WrongSecretRejected(t *testing.T) {
	r := authTestRouter("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "cust-42"))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40100`)
}
