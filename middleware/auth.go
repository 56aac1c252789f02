package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const (
	UsernameKey = "username"
	RoleKey     = "role"
	BearerKey   = "bearer"
)

// AuthMiddleware validates the bearer token issued by the auth layer and
// places the session identity (username, role) and the raw credential in
// the request context. The raw credential is forwarded verbatim to the
// backend for order endpoints.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(header[7:], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(UsernameKey, sub)
		} else if username, ok := claims["username"].(string); ok {
			c.Set(UsernameKey, username)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleKey, role)
		}
		c.Set(BearerKey, header)

		c.Next()
	}
}

// SessionID returns the identity the session's cart and staged
// transitions are keyed by.
func SessionID(c *gin.Context) (string, bool) {
	username := c.GetString(UsernameKey)
	return username, username != ""
}

// Bearer returns the raw Authorization header captured by
// AuthMiddleware.
func Bearer(c *gin.Context) string {
	return c.GetString(BearerKey)
}

// RequireRole aborts unless the authenticated caller has the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(RoleKey) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
