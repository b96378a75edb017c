// Package token mints provider-compatible access tokens. The video provider
// validates them against the shared API secret; this service never calls the
// provider's API itself.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer = "stream-io-api"
	ttl    = 24 * time.Hour
)

// Claims is the claim set the provider expects: the user identifier plus
// standard issuer/iat/exp claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer signs provider tokens with the shared API secret (HS256).
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates a token issuer for the given provider API secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue mints a token for the given user identifier, valid for 24 hours from
// now. A fresh token is minted on every call; there is no revocation.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}
