package otp

import (
	"context"
	"errors"
	"time"
)

// TTL is how long an issued code stays valid.
const TTL = 5 * time.Minute

var (
	// ErrNotFound covers unknown and expired entries alike.
	ErrNotFound = errors.New("otp expired or not requested")
	ErrMismatch = errors.New("invalid otp")
)

// Store keeps one pending code per email. Implementations must be safe for
// concurrent use and must remove the entry on a successful Verify.
type Store interface {
	Save(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) error
}

// Sender delivers a code to the user.
type Sender interface {
	SendOTP(ctx context.Context, email, code string) error
}
