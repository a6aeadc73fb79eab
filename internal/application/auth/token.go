package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bryanwahyu/ayurconnect/internal/application"
)

const issuer = "ayurconnect"

var ErrInvalidToken = errors.New("invalid session token")

// Claims identify a logged-in user by email.
type Claims struct {
	jwt.RegisteredClaims
}

// Tokens issues and checks HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	clock  application.Clock
}

func NewTokens(secret string, ttl time.Duration, clock application.Clock) *Tokens {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, clock: clock}
}

// Issue signs a token for email.
func (t *Tokens) Issue(email string) (string, time.Time, error) {
	now := t.clock.Now()
	exp := now.Add(t.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse validates signature, issuer and expiry.
func (t *Tokens) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// Subject returns the email a valid token was issued for.
func (t *Tokens) Subject(token string) (string, error) {
	c, err := t.Parse(token)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}
