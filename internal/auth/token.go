package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Login string `json:"login"`
	jwt.StandardClaims
}

// IssueToken signs an HS256 token for login, valid for ttl.
func IssueToken(key []byte, login string, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Login: login,
		StandardClaims: jwt.StandardClaims{
			Subject:   login,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// ParseToken verifies the signature and expiry of a token issued by IssueToken.
func ParseToken(key []byte, token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// InspectToken reads the claims without checking the signature. Clients use it to
// tell whether a stored token has expired; the server still verifies every request.
func InspectToken(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if err := claims.Valid(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
