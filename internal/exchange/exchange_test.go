package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akasem/divvy/internal/money"
)

// stubProvider returns a fixed rate, or an error, and counts calls.
type stubProvider struct {
	rate  money.Amount
	err   error
	calls int
}

func (p *stubProvider) FetchRate(ctx context.Context, from, to string) (money.Amount, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return p.rate, nil
}

func TestApply(t *testing.T) {
	amount, err := money.FromFloat(100)
	require.NoError(t, err)
	rate, err := money.FromFloat(0.85)
	require.NoError(t, err)

	want, err := money.FromFloat(85)
	require.NoError(t, err)
	assert.Equal(t, want, Apply(amount, rate))
}

func TestApply_TruncatesTowardZero(t *testing.T) {
	// 0.0003 * 0.3333 = 0.00009999 -> 0
	assert.Equal(t, money.Amount(0), Apply(3, 3333))
}

func TestRate_SameCurrencyIsIdentity(t *testing.T) {
	p := &stubProvider{rate: 8500}
	svc := NewService(p, 0)

	rate, err := svc.Rate(context.Background(), "USD", "USD")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(money.Scale), rate)
	assert.Zero(t, p.calls)
}

func TestRate_CachesWithinTTL(t *testing.T) {
	p := &stubProvider{rate: 8500}
	svc := NewService(p, 0)

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rate, err := svc.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(8500), rate)
	assert.Equal(t, 1, p.calls)

	// Eleven hours later the cached rate is still fresh.
	now = now.Add(11 * time.Hour)
	_, err = svc.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)

	// Past twelve hours it is refetched.
	now = now.Add(2 * time.Hour)
	_, err = svc.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestRate_FallsBackToLastKnownRate(t *testing.T) {
	p := &stubProvider{rate: 8500}
	svc := NewService(p, 0)

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)

	// Provider goes offline after the TTL expires; the stale rate is served.
	p.err = errors.New("connection refused")
	now = now.Add(13 * time.Hour)

	rate, err := svc.Rate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(8500), rate)
}

func TestRate_ErrorWithoutFallback(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	svc := NewService(p, 0)

	_, err := svc.Rate(context.Background(), "USD", "EUR")
	assert.ErrorIs(t, err, ErrRateUnavailable)
}

func TestHTTPProvider_FetchRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "EUR", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rates": {"EUR": 0.85}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	rate, err := p.FetchRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(8500), rate)
}

func TestHTTPProvider_MissingCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	_, err := p.FetchRate(context.Background(), "USD", "EUR")
	assert.Error(t, err)
}

func TestHTTPProvider_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL)
	_, err := p.FetchRate(context.Background(), "USD", "EUR")
	assert.Error(t, err)
}
