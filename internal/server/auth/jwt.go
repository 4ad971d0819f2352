// Package auth implements the token service and the password hasher used by
// the authentication core.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jtech/tasklist/internal/common"
)

// TokenKind distinguishes access tokens from refresh tokens so that one can
// never be presented in place of the other.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims are the JWT claims carried by both token kinds: the standard
// registered set plus the owning user ID and the token kind.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"uid"`
	Kind   TokenKind `json:"kind"`
}

// GenerateToken signs an HS256 token of the given kind bound to userID.
func GenerateToken(userID string, kind TokenKind, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Kind:   kind,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies signature, expiry, and kind, and returns the user ID
// the token is bound to. Expired tokens yield common.ErrTokenExpired; every
// other failure yields common.ErrInvalidToken.
func ParseToken(tokenString string, kind TokenKind, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Kind != kind || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
