// Package token issues short-lived verification tokens for allowed sessions.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vouch/internal/verification/models"
)

var ErrInvalidToken = errors.New("invalid verification token")

// Claims carries the verification outcome inside the signed token.
type Claims struct {
	SessionID string          `json:"sessionId"`
	Score     float64         `json:"score"`
	Decision  models.Decision `json:"decision"`
	jwt.RegisteredClaims
}

// Issuer signs and validates verification tokens with a shared HMAC key.
type Issuer struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewIssuer(signingKey []byte, ttl time.Duration) (*Issuer, error) {
	if len(signingKey) == 0 {
		return nil, errors.New("token issuer: signing key is required")
	}
	return &Issuer{signingKey: signingKey, ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) Issue(sessionID string, score float64, decision models.Decision) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		SessionID: sessionID,
		Score:     score,
		Decision:  decision,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "vouch",
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign verification token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims, rejecting anything not
// signed with our key or past its expiry.
func (i *Issuer) Validate(raw string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.signingKey, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
