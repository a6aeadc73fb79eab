package otpstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/bcrypt"

	"github.com/bryanwahyu/ayurconnect/internal/domain/otp"
)

const (
	defaultSize = 10_000
	// MaxAttempts wrong guesses burn the code.
	MaxAttempts = 5
)

type entry struct {
	hash     []byte
	attempts int
}

// Store is an in-process otp.Store. Codes are kept as bcrypt hashes in an
// expiring LRU keyed by normalized email.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *entry]
	cost  int
}

type Option func(*Store)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// New creates a store holding at most size pending codes for ttl each.
func New(size int, ttl time.Duration, opts ...Option) *Store {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = otp.TTL
	}
	s := &Store{cache: expirable.NewLRU[string, *entry](size, nil, ttl), cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Save(_ context.Context, email, code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(key(email), &entry{hash: hash})
	return nil
}

// Verify compares outside the lock; bcrypt is slow on purpose and one
// user's guess must not hold up everyone else's. Each comparison reserves
// an attempt up front, so concurrent guesses still stop at MaxAttempts.
func (s *Store) Verify(_ context.Context, email, code string) error {
	k := key(email)

	s.mu.Lock()
	e, ok := s.cache.Get(k)
	if !ok {
		s.mu.Unlock()
		return otp.ErrNotFound
	}
	if e.attempts >= MaxAttempts {
		s.cache.Remove(k)
		s.mu.Unlock()
		return otp.ErrNotFound
	}
	e.attempts++
	s.mu.Unlock()

	err := bcrypt.CompareHashAndPassword(e.hash, []byte(code))

	s.mu.Lock()
	defer s.mu.Unlock()
	// a resend or a concurrent success may have replaced the entry meanwhile
	cur, ok := s.cache.Peek(k)
	current := ok && cur == e

	switch {
	case err == nil:
		if !current {
			return otp.ErrNotFound
		}
		s.cache.Remove(k)
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		if current && e.attempts >= MaxAttempts {
			s.cache.Remove(k)
		}
		return otp.ErrMismatch
	default:
		return err
	}
}

// Len reports the number of pending codes, expired ones included until swept.
func (s *Store) Len() int { return s.cache.Len() }

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
