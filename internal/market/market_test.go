package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fjacquet/bank-insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Provider = (*Client)(nil)
var _ Provider = (*MockProvider)(nil)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{
		CurrencyURL:       server.URL + "/latest",
		StockURL:          server.URL + "/query",
		APIKey:            "secret",
		BaseCurrency:      "RUB",
		Timeout:           2 * time.Second,
		RequestsPerMinute: 1000,
	}, logging.NewMockLogger())
}

func TestClient_CurrencyRates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "RUB", r.URL.Query().Get("symbols"))
		rates := map[string]string{"USD": "73.2134", "EUR": "87.0851"}
		fmt.Fprintf(w, `{"success":true,"base":%q,"rates":{"RUB":%s}}`, r.URL.Query().Get("base"), rates[r.URL.Query().Get("base")])
	})

	rates, err := client.CurrencyRates(context.Background(), []string{"USD", "EUR"})
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "USD", rates[0].Currency)
	assert.Equal(t, "73.2134", rates[0].Rate.String())
	assert.Equal(t, "EUR", rates[1].Currency)

	data, err := json.Marshal(rates[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"USD","rate":73.21}`, string(data))
}

func TestClient_CurrencyRatesRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"error":{"info":"invalid access key"}}`)
	})

	_, err := client.CurrencyRates(context.Background(), []string{"USD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid access key")
}

func TestClient_StockPrices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		symbol := r.URL.Query().Get("symbol")
		fmt.Fprintf(w, `{"Global Quote":{"01. symbol":%q,"05. price":"150.1200"}}`, symbol)
	})

	prices, err := client.StockPrices(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "AAPL", prices[0].Stock)
	assert.Equal(t, "150.12", prices[0].Price.StringFixed(2))
}

func TestClient_StockPricesRateLimitNote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note":"API call frequency exceeded"}`)
	})

	_, err := client.StockPrices(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency exceeded")
}

func TestClient_HTTPErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.StockPrices(context.Background(), []string{"AAPL"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")

	_, err = client.CurrencyRates(context.Background(), []string{"USD"})
	assert.Error(t, err)
}

func TestClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})

	_, err := client.CurrencyRates(context.Background(), []string{"USD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestClient_EmptyListsMakeNoRequests(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	rates, err := client.CurrencyRates(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rates)

	prices, err := client.StockPrices(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.Zero(t, calls)
}

func TestClient_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rates":{"RUB":1}}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CurrencyRates(ctx, []string{"USD"})
	assert.Error(t, err)
}

func TestClient_NoEndpoint(t *testing.T) {
	client := NewClient(Options{}, logging.NewMockLogger())
	_, err := client.CurrencyRates(context.Background(), []string{"USD"})
	assert.Error(t, err)
}
