// Package auth mints and verifies the HS256 access tokens that identify
// task owners. Verification is a pure function of (token, secret, current
// time); every failure maps onto common.ErrUnauthenticated so the transport
// layer reports a single category, while the tagged sentinels below keep the
// distinction available for logs.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Tagged verification outcomes. All of them wrap common.ErrUnauthenticated.
var (
	ErrTokenMalformed   = fmt.Errorf("%w: malformed token", common.ErrUnauthenticated)
	ErrTokenExpired     = fmt.Errorf("%w: token expired", common.ErrUnauthenticated)
	ErrSignatureInvalid = fmt.Errorf("%w: invalid signature", common.ErrUnauthenticated)
	ErrNoSubject        = fmt.Errorf("%w: missing subject claim", common.ErrUnauthenticated)
)

// Claims carries the registered claim set plus a duplicate user_id claim kept
// for compatibility with tokens minted by the original frontend auth stack.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
}

// GenerateToken signs an HS256 token whose subject is userID, valid for
// validityDuration from now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Authenticate verifies tokenString against secretKey and returns the subject
// identifier. Only HS256 is accepted; tokens asserting any other algorithm
// (including "none") are rejected. The subject comes from the standard "sub"
// claim, falling back to "user_id".
func Authenticate(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrSignatureInvalid
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrSignatureInvalid
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.UserID
	}
	if subject == "" {
		return "", ErrNoSubject
	}

	return subject, nil
}
