package auth

import (
	"errors"
	"net/http"
	"strings"

	"fitcourse/internal/access"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware validates the bearer token and stores the resolved
// session on the gin context.
func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case errors.Is(err, ErrInvalidTokenType):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token type"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			}
			c.Abort()
			return
		}

		c.Set(sessionKey, claims.Session())
		c.Next()
	}
}

// OptionalAuthMiddleware resolves a session when a valid token is
// present but lets anonymous requests through. Program browsing uses it
// so unauthenticated callers still get the teaser view.
func OptionalAuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, err := claimsFromHeader(c, accessTokenSecret)
		if err != nil {
			// A bad token on an optional route is treated as anonymous.
			c.Next()
			return
		}

		c.Set(sessionKey, claims.Session())
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, secret string) (*JWTClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("Authorization header required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return nil, errors.New("Invalid authorization header format")
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, errors.New("Token is empty")
	}

	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "access" {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}

// RequireRole aborts with 403 unless the session carries one of the
// given roles. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User session not found"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// GetSession returns the session stored by the auth middleware, or
// (nil, false) for anonymous requests.
func GetSession(c *gin.Context) (*access.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}

	session, ok := v.(*access.Session)
	if !ok || session == nil {
		return nil, false
	}

	return session, true
}

// GetUserID is a convenience accessor for handlers that only need the id.
func GetUserID(c *gin.Context) (int, bool) {
	session, ok := GetSession(c)
	if !ok {
		return 0, false
	}
	return session.UserID, true
}
