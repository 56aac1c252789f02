package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	assert.NoError(t, err)
	return signed
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		session, _ := SessionID(c)
		c.JSON(http.StatusOK, gin.H{
			"session": session,
			"role":    c.GetString(RoleKey),
			"bearer":  Bearer(c),
		})
	})
	r.GET("/admin", RequireRole("ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, jwt.MapClaims{
		"sub":  "alice",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := get(r, "/whoami", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"alice"`)
	assert.Contains(t, w.Body.String(), `"role":"USER"`)
	assert.Contains(t, w.Body.String(), "Bearer "+token)
}

func TestAuthMiddleware_UsernameClaimFallback(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, jwt.MapClaims{
		"username": "bob",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	w := get(r, "/whoami", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"bob"`)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	w := get(newAuthRouter(), "/whoami", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is required")
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	w := get(newAuthRouter(), "/whoami", "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token format")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := get(r, "/whoami", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := newAuthRouter()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"})
	signed, err := token.SignedString([]byte("someone-else"))
	assert.NoError(t, err)

	w := get(r, "/whoami", "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter()

	admin := signToken(t, jwt.MapClaims{
		"sub": "root", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusOK, get(r, "/admin", "Bearer "+admin).Code)

	user := signToken(t, jwt.MapClaims{
		"sub": "alice", "role": "USER", "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+user).Code)
}
