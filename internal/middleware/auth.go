package middleware

import (
	"crypto/subtle"
	"net/http"

	"estapark/internal/apierror"

	"github.com/gin-gonic/gin"
)

// TokenAuth validates the shared secret on every protected route.
// The terminals all live on the lot's own network, so a single pre-shared
// token in the X-API-Token header is the whole auth surface.
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-API-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação requerida"))
			return
		}
		c.Next()
	}
}
