// Package auth verifies session tokens issued by the authentication provider and carries the
// resulting principal through request contexts.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultPremiumClaim = "is_premium"

var (
	ErrMissingToken = errors.New("authorization token is missing")
	ErrTokenExpired = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Principal is the authenticated caller.
type Principal struct {
	// AppUserID is the provider's user id (the token subject).
	AppUserID string
	// Premium is the last-known entitlement flag carried by the token.
	Premium bool
	// Token is the raw bearer token, forwarded to stores that enforce row-level security.
	Token string
}

// Verifier checks HMAC-signed tokens.
type Verifier struct {
	secret       []byte
	premiumClaim string
}

// NewVerifier creates a verifier. premiumClaim names the boolean claim holding the premium
// flag; it is looked up at the top level and inside app_metadata.
func NewVerifier(secret, premiumClaim string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if premiumClaim == "" {
		premiumClaim = defaultPremiumClaim
	}
	return &Verifier{secret: []byte(secret), premiumClaim: premiumClaim}, nil
}

// Verify parses tokenString and returns its principal.
func (v *Verifier) Verify(tokenString string) (Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Principal{}, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	if _, ok := claims["exp"]; !ok {
		return Principal{}, errors.Wrap(ErrInvalidToken, "missing exp claim")
	}

	sub, _ := claims["sub"].(string)
	if _, err := uuid.Parse(sub); err != nil {
		return Principal{}, errors.Wrap(ErrInvalidToken, "subject is not a user id")
	}

	return Principal{
		AppUserID: sub,
		Premium:   v.premium(claims),
		Token:     tokenString,
	}, nil
}

func (v *Verifier) premium(claims jwt.MapClaims) bool {
	if p, ok := claims[v.premiumClaim].(bool); ok {
		return p
	}
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if p, ok := meta[v.premiumClaim].(bool); ok {
			return p
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached to ctx.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
