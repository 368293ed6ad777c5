package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/role"
)

func createValidJWT(userID, email, userRole string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  userRole,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})

	tokenString, _ := token.SignedString([]byte("test-secret"))
	return tokenString
}

const testUserID = "550e8400-e29b-41d4-a716-446655440000"

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret:    "test-secret",
		Logger:    logger,
		SkipPaths: []string{},
	}

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		actor, err := RequireAuth(c)
		assert.NoError(t, err)
		assert.Equal(t, testUserID, actor.ID.String())
		assert.Equal(t, "lead@studioforma.com", actor.Email)
		assert.Equal(t, role.RoleChiefArchitect, actor.Role)
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+createValidJWT(testUserID, "lead@studioforma.com", "chief_architect"))
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_LegacyRoleAliasNormalized(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret: "test-secret",
		Logger: logger,
	}

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		actor, err := RequireAuth(c)
		assert.NoError(t, err)
		assert.Equal(t, role.RoleJuniorArchitect, actor.Role)
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+createValidJWT(testUserID, "jr@studioforma.com", "jr_architect"))
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_MissingAuthorizationHeader(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret:    "test-secret",
		Logger:    logger,
		SkipPaths: []string{},
	}

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	// No Authorization header
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err) // Middleware handles the error response
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret: "a-different-secret",
		Logger: logger,
	}

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+createValidJWT(testUserID, "lead@studioforma.com", "chief_architect"))
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestJWTMiddleware_InvalidSubjectFormat(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret: "test-secret",
		Logger: logger,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "not-a-uuid",
		"email": "lead@studioforma.com",
		"role":  "chief_architect",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	tokenString, _ := token.SignedString([]byte("test-secret"))

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_SUBJECT")
}

func TestJWTMiddleware_UnknownRoleRejected(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret: "test-secret",
		Logger: logger,
	}

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+createValidJWT(testUserID, "someone@studioforma.com", "contractor"))
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNKNOWN_ROLE")
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	logger := zap.NewNop()

	config := JWTConfig{
		Secret:    "test-secret",
		Logger:    logger,
		SkipPaths: []string{"/health"},
	}

	e := echo.New()
	middleware := JWTMiddleware(config)

	handler := middleware(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Test skipped path
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	// No Authorization header - should still pass
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)

	err := handler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_NoActorInContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	actor, err := RequireAuth(c)
	assert.Nil(t, actor)
	assert.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
