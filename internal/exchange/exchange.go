package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/akasem/divvy/internal/money"
)

// Common errors
var (
	ErrRateUnavailable = errors.New("exchange rate unavailable")
)

// Apply converts a scaled amount with a scaled snapshot rate. Expenses store
// the rate captured at creation time; conversions are never re-derived from a
// fresher rate.
func Apply(amount, rate money.Amount) money.Amount {
	return money.Mul(amount, rate)
}

// Provider fetches a current conversion rate between two currency codes.
type Provider interface {
	FetchRate(ctx context.Context, from, to string) (money.Amount, error)
}

// DefaultTTL is how long a fetched rate stays fresh before a refetch.
const DefaultTTL = 12 * time.Hour

type cachedRate struct {
	rate      money.Amount
	fetchedAt time.Time
}

// Service hands out scaled conversion rates, caching fetched rates for a TTL
// and falling back to the last known rate when the provider is unreachable.
type Service struct {
	provider Provider
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cachedRate
}

// NewService creates a rate service around a provider. A non-positive ttl
// selects DefaultTTL.
func NewService(provider Provider, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[string]cachedRate),
	}
}

// Rate returns the scaled conversion rate from one currency to another. A
// cached rate younger than the TTL is returned as-is; otherwise the provider
// is asked for a fresh one, and on failure the stale rate (if any) is served
// instead of an error.
func (s *Service) Rate(ctx context.Context, from, to string) (money.Amount, error) {
	if from == to {
		return money.Scale, nil
	}

	key := from + "/" + to

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()

	if ok && s.now().Sub(cached.fetchedAt) < s.ttl {
		return cached.rate, nil
	}

	rate, err := s.provider.FetchRate(ctx, from, to)
	if err != nil {
		if ok {
			return cached.rate, nil
		}
		return 0, fmt.Errorf("%w: %s to %s: %v", ErrRateUnavailable, from, to, err)
	}

	s.mu.Lock()
	s.cache[key] = cachedRate{rate: rate, fetchedAt: s.now()}
	s.mu.Unlock()

	return rate, nil
}
