// Package market fetches currency exchange rates and stock quotes over HTTP.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fjacquet/bank-insights/internal/logging"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// CurrencyRate is the price of one unit of Currency in the base currency.
type CurrencyRate struct {
	Currency string
	Rate     decimal.Decimal
}

type currencyRateView struct {
	Currency string  `json:"currency" yaml:"currency"`
	Rate     float64 `json:"rate" yaml:"rate"`
}

func (c CurrencyRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(currencyRateView{Currency: c.Currency, Rate: c.Rate.Round(2).InexactFloat64()})
}

func (c CurrencyRate) MarshalYAML() (interface{}, error) {
	return currencyRateView{Currency: c.Currency, Rate: c.Rate.Round(2).InexactFloat64()}, nil
}

// StockPrice is the last traded price of a ticker.
type StockPrice struct {
	Stock string
	Price decimal.Decimal
}

type stockPriceView struct {
	Stock string  `json:"stock" yaml:"stock"`
	Price float64 `json:"price" yaml:"price"`
}

func (s StockPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(stockPriceView{Stock: s.Stock, Price: s.Price.Round(2).InexactFloat64()})
}

func (s StockPrice) MarshalYAML() (interface{}, error) {
	return stockPriceView{Stock: s.Stock, Price: s.Price.Round(2).InexactFloat64()}, nil
}

// Provider looks up market data.
type Provider interface {
	CurrencyRates(ctx context.Context, currencies []string) ([]CurrencyRate, error)
	StockPrices(ctx context.Context, tickers []string) ([]StockPrice, error)
}

// Options configures a Client.
type Options struct {
	CurrencyURL       string
	StockURL          string
	APIKey            string
	BaseCurrency      string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client implements Provider against an exchange-rates API and a quote API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	opts       Options
	logger     logging.Logger
}

// NewClient creates a Client. Requests are spaced to honor
// RequestsPerMinute.
func NewClient(opts Options, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 30
	}
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = "RUB"
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1),
		opts:       opts,
		logger:     logger.WithField(logging.FieldComponent, "market_client"),
	}
}

type ratesResponse struct {
	Success *bool                      `json:"success"`
	Rates   map[string]decimal.Decimal `json:"rates"`
	Error   *struct {
		Info string `json:"info"`
	} `json:"error"`
}

// CurrencyRates returns the base-currency price of each currency, in the
// requested order. The first failing lookup aborts the call.
func (c *Client) CurrencyRates(ctx context.Context, currencies []string) ([]CurrencyRate, error) {
	rates := make([]CurrencyRate, 0, len(currencies))
	for _, currency := range currencies {
		query := url.Values{}
		query.Set("base", currency)
		query.Set("symbols", c.opts.BaseCurrency)

		var body ratesResponse
		if err := c.getJSON(ctx, c.opts.CurrencyURL, query, &body); err != nil {
			return nil, fmt.Errorf("currency rate %s: %w", currency, err)
		}
		if body.Success != nil && !*body.Success {
			msg := "request rejected"
			if body.Error != nil && body.Error.Info != "" {
				msg = body.Error.Info
			}
			return nil, fmt.Errorf("currency rate %s: %s", currency, msg)
		}
		value, ok := body.Rates[c.opts.BaseCurrency]
		if !ok {
			return nil, fmt.Errorf("currency rate %s: no %s rate in response", currency, c.opts.BaseCurrency)
		}
		rates = append(rates, CurrencyRate{Currency: currency, Rate: value})
	}
	return rates, nil
}

type quoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
	Note string `json:"Note"`
}

// StockPrices returns the latest price of each ticker, in the requested
// order. The first failing lookup aborts the call.
func (c *Client) StockPrices(ctx context.Context, tickers []string) ([]StockPrice, error) {
	prices := make([]StockPrice, 0, len(tickers))
	for _, ticker := range tickers {
		query := url.Values{}
		query.Set("function", "GLOBAL_QUOTE")
		query.Set("symbol", ticker)
		if c.opts.APIKey != "" {
			query.Set("apikey", c.opts.APIKey)
		}

		var body quoteResponse
		if err := c.getJSON(ctx, c.opts.StockURL, query, &body); err != nil {
			return nil, fmt.Errorf("stock price %s: %w", ticker, err)
		}
		if body.GlobalQuote.Price == "" {
			reason := "no quote in response"
			if body.Note != "" {
				reason = body.Note
			}
			return nil, fmt.Errorf("stock price %s: %s", ticker, reason)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(body.GlobalQuote.Price))
		if err != nil {
			return nil, fmt.Errorf("stock price %s: %w", ticker, err)
		}
		prices = append(prices, StockPrice{Stock: ticker, Price: price})
	}
	return prices, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	if endpoint == "" {
		return fmt.Errorf("no endpoint configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := endpoint
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		reqURL = endpoint + sep + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("apikey", c.opts.APIKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WithError(cerr).Warn("Failed to close response body")
		}
	}()

	c.logger.Debug("Market request finished",
		logging.F(logging.FieldURL, endpoint),
		logging.F("status", resp.StatusCode),
		logging.F(logging.FieldDuration, time.Since(started).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}
