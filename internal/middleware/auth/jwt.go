package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/domain/role"
)

const actorContextKey = "authenticated_actor"

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
}

// JWTMiddleware validates the identity provider's HMAC token and resolves
// the actor's role. Tokens with an unknown role claim are rejected here so
// nothing downstream ever sees an unvalidated role string.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				config.Logger.Warn("Missing authorization header",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Authorization header required",
					"code":  "MISSING_AUTH_HEADER",
				})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid authorization header format. Expected: Bearer <token>",
					"code":  "INVALID_AUTH_FORMAT",
				})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid or expired token",
					"code":  "INVALID_TOKEN",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Invalid token claims",
					"code":  "INVALID_TOKEN",
				})
			}

			sub, _ := claims["sub"].(string)
			actorID, err := uuid.Parse(sub)
			if err != nil {
				config.Logger.Warn("Invalid subject claim",
					zap.String("sub", sub),
					zap.String("path", path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Token subject must be a valid UUID",
					"code":  "INVALID_SUBJECT",
				})
			}

			roleClaim, _ := claims["role"].(string)
			actorRole, err := role.Parse(roleClaim)
			if err != nil {
				config.Logger.Warn("Unknown role claim",
					zap.String("role", roleClaim),
					zap.String("path", path))
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "Unknown role",
					"code":  "UNKNOWN_ROLE",
				})
			}

			email, _ := claims["email"].(string)

			c.Set(actorContextKey, &role.Actor{
				ID:    actorID,
				Email: email,
				Role:  actorRole,
			})

			return next(c)
		}
	}
}

// RequireAuth returns the authenticated actor set by JWTMiddleware. The
// returned error is an *echo.HTTPError suitable for returning from a handler.
func RequireAuth(c echo.Context) (*role.Actor, error) {
	actor, ok := c.Get(actorContextKey).(*role.Actor)
	if !ok || actor == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return actor, nil
}
