package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed bearer token")

// TokenPresence is what the portal can read from a bearer token without the
// signing key. It is never used for an authorization decision.
type TokenPresence struct {
	Subject   string
	ExpiresAt *time.Time
}

// DecodeTokenPresence checks that token is a structurally valid JWT and reads
// its subject and expiry. The signature is not verified.
func DecodeTokenPresence(token string) (*TokenPresence, error) {
	if token == "" {
		return nil, ErrMalformedToken
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, errors.Join(ErrMalformedToken, err)
	}

	presence := &TokenPresence{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		presence.ExpiresAt = &exp
	}
	return presence, nil
}

// Expired reports whether the token carries an expiry that has passed.
func (p *TokenPresence) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}
