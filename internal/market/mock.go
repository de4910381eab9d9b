package market

import "context"

// MockProvider returns canned market data for tests.
type MockProvider struct {
	Rates     []CurrencyRate
	Prices    []StockPrice
	RatesErr  error
	PricesErr error
}

// CurrencyRates returns the canned rates or RatesErr.
func (m *MockProvider) CurrencyRates(ctx context.Context, currencies []string) ([]CurrencyRate, error) {
	if m.RatesErr != nil {
		return nil, m.RatesErr
	}
	return m.Rates, nil
}

// StockPrices returns the canned prices or PricesErr.
func (m *MockProvider) StockPrices(ctx context.Context, tickers []string) ([]StockPrice, error) {
	if m.PricesErr != nil {
		return nil, m.PricesErr
	}
	return m.Prices, nil
}
