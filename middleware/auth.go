package middleware

import (
	"net/http"
	"strings"

	"autoserve/services/customer"
	"autoserve/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthCustomerMiddleware validates the bearer token and resolves the
// customer it belongs to. Tokens must both verify and still be registered in
// the auth cache (not revoked).
func JWTAuthCustomerMiddleware(custSvc customer.CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || customerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if !custSvc.TokenActive(c.Request.Context(), tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set("customerID", customerID)
		c.Next()
	}
}
