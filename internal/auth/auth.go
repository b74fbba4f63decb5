package auth

import (
	"errors"
	"time"

	"fitcourse/internal/access"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtIssuer   = "fitcourse-api"
	jwtAudience = "fitcourse-users"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrEmptyJWTSecret   = errors.New("jwt secret cannot be empty")
)

// JWTClaims carry the user identity plus the subscription snapshot at
// token issue time. The snapshot is the deliberately stale "session
// claim" the access resolver falls back to when the database read fails.
type JWTClaims struct {
	UserID             int    `json:"user_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	SubscriptionID     string `json:"subscription_id,omitempty"`
	SubscriptionStatus string `json:"subscription_status,omitempty"`
	TokenType          string `json:"token_type"`
	jwt.RegisteredClaims
}

// Session converts the claims into the resolver's session shape.
func (c *JWTClaims) Session() *access.Session {
	return &access.Session{
		UserID:             c.UserID,
		Email:              c.Email,
		Role:               c.Role,
		SubscriptionID:     c.SubscriptionID,
		SubscriptionStatus: c.SubscriptionStatus,
	}
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func CheckPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// TokenSubject is the identity material signed into a token.
type TokenSubject struct {
	UserID             int
	Email              string
	Role               string
	SubscriptionID     string
	SubscriptionStatus string
}

func generateToken(sub TokenSubject, tokenType, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptyJWTSecret
	}

	now := time.Now()
	claims := &JWTClaims{
		UserID:             sub.UserID,
		Email:              sub.Email,
		Role:               sub.Role,
		SubscriptionID:     sub.SubscriptionID,
		SubscriptionStatus: sub.SubscriptionStatus,
		TokenType:          tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateAccessToken(sub TokenSubject, secret string) (string, error) {
	return generateToken(sub, "access", secret, AccessTokenTTL)
}

func GenerateRefreshToken(sub TokenSubject, secret string) (string, error) {
	return generateToken(sub, "refresh", secret, RefreshTokenTTL)
}

func GenerateTokens(sub TokenSubject, secret string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(sub, secret)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(sub, secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func ValidateToken(tokenString, secret string) (*JWTClaims, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// RefreshAccessToken validates a refresh token and issues a new access
// token for the same subject.
func RefreshAccessToken(refreshToken, secret string) (string, *JWTClaims, error) {
	claims, err := ValidateToken(refreshToken, secret)
	if err != nil {
		return "", nil, err
	}

	if claims.TokenType != "refresh" {
		return "", nil, ErrInvalidTokenType
	}

	newAccessToken, err := GenerateAccessToken(TokenSubject{
		UserID:             claims.UserID,
		Email:              claims.Email,
		Role:               claims.Role,
		SubscriptionID:     claims.SubscriptionID,
		SubscriptionStatus: claims.SubscriptionStatus,
	}, secret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, claims, nil
}
