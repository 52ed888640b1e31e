package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akasem/divvy/internal/money"
)

// HTTPProvider fetches conversion rates from a frankfurter-style JSON API:
// GET {base}/latest?from=USD&to=EUR -> {"rates": {"EUR": 0.85}}.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates a provider against the given API base URL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Rates map[string]json.Number `json:"rates"`
}

// FetchRate requests the rate from one currency to another and returns it as
// a scaled integer. The JSON number is parsed through decimal, never through
// a float.
func (p *HTTPProvider) FetchRate(ctx context.Context, from, to string) (money.Amount, error) {
	u := fmt.Sprintf("%s/latest?from=%s&to=%s", p.baseURL, url.QueryEscape(from), url.QueryEscape(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode rate response: %w", err)
	}

	raw, ok := body.Rates[to]
	if !ok {
		return 0, fmt.Errorf("rate API response missing %s", to)
	}

	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", raw.String(), err)
	}

	return money.FromDecimal(d), nil
}
