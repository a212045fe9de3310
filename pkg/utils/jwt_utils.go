package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The signing key and session lifetime come from the environment so deploys
// never share the development defaults.
var (
	jwtSecretKey = []byte(Getenv("JWT_SECRET", "dev-only-pharmacy-session-secret"))
	sessionTTL   = loadSessionTTL()
)

func loadSessionTTL() time.Duration {
	hours, err := strconv.Atoi(Getenv("SESSION_TTL_HOURS", "72"))
	if err != nil || hours <= 0 {
		hours = 72
	}
	return time.Duration(hours) * time.Hour
}

// SessionClaims binds a session token to exactly one shop. The shop id is
// the only authorization input owner routes ever trust; it is never read
// from client-supplied form or path parameters.
type SessionClaims struct {
	ShopID string `json:"shop_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed session token for a shop.
func GenerateSessionToken(shopID string) (string, error) {
	expirationTime := time.Now().Add(sessionTTL)
	claims := &SessionClaims{
		ShopID: shopID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pharmacy-pos-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionToken parses and validates a session token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SessionTTL reports the configured session lifetime, used to derive the
// session cookie max age.
func SessionTTL() time.Duration {
	return sessionTTL
}
