// Package views assembles composite pages out of analysis results and
// market data.
package views

import (
	"context"
	"time"

	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/market"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/store"

	"golang.org/x/sync/errgroup"
)

// TopCount is the number of largest transactions shown on the home page.
const TopCount = 5

// Page is the home page payload.
type Page struct {
	Greeting        string                    `json:"greeting" yaml:"greeting"`
	Cards           []analysis.CardSummary    `json:"cards" yaml:"cards"`
	TopTransactions []analysis.TopTransaction `json:"top_transactions" yaml:"top_transactions"`
	CurrencyRates   []market.CurrencyRate     `json:"currency_rates" yaml:"currency_rates"`
	StockPrices     []market.StockPrice       `json:"stock_prices" yaml:"stock_prices"`
}

// Sections lays the page out for the table renderer.
func (p Page) Sections() []report.Section {
	sections := []report.Section{
		{Rows: [][]string{{p.Greeting}}},
		report.CardSection(p.Cards),
		report.TopSection(p.TopTransactions),
	}

	rates := report.Section{Title: "Currency rates", Header: []string{"Currency", "Rate"}}
	for _, r := range p.CurrencyRates {
		rates.Rows = append(rates.Rows, []string{r.Currency, report.Amount(r.Rate)})
	}
	stocks := report.Section{Title: "Stock prices", Header: []string{"Stock", "Price"}}
	for _, s := range p.StockPrices {
		stocks.Rows = append(stocks.Rows, []string{s.Stock, report.Amount(s.Price)})
	}
	return append(sections, rates, stocks)
}

// Greeting returns the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good morning"
	case h >= 12 && h < 18:
		return "Good afternoon"
	case h >= 18 && h < 23:
		return "Good evening"
	default:
		return "Good night"
	}
}

// HomePage builds the home page.
type HomePage struct {
	analyzer *analysis.Analyzer
	settings store.Provider
	market   market.Provider
	timeout  time.Duration
	logger   logging.Logger
}

// NewHomePage wires a HomePage. A nil market provider skips the market
// sections.
func NewHomePage(analyzer *analysis.Analyzer, settings store.Provider, provider market.Provider, timeout time.Duration, logger logging.Logger) *HomePage {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &HomePage{
		analyzer: analyzer,
		settings: settings,
		market:   provider,
		timeout:  timeout,
		logger:   logger.WithField(logging.FieldComponent, "home_page"),
	}
}

// Build computes the page as of at. Cards and top transactions cover the
// month to date; market failures leave their lists empty.
func (h *HomePage) Build(ctx context.Context, table *models.Table, at time.Time) Page {
	window := dateutils.DateRange{Start: dateutils.StartOfMonth(at), End: at}
	txs := h.analyzer.TransactionsIn(table, window)

	page := Page{
		Greeting:        Greeting(at),
		Cards:           h.analyzer.CardSummaries(txs),
		TopTransactions: h.analyzer.TopTransactions(txs, TopCount),
		CurrencyRates:   []market.CurrencyRate{},
		StockPrices:     []market.StockPrice{},
	}

	if h.market == nil || h.settings == nil {
		return page
	}
	settings := h.settings.LoadSettings()

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	// Each lookup swallows its own error so one failure leaves the other intact.
	var g errgroup.Group
	g.Go(func() error {
		if len(settings.UserCurrencies) == 0 {
			return nil
		}
		rates, err := h.market.CurrencyRates(ctx, settings.UserCurrencies)
		if err != nil {
			h.logger.WithError(err).Warn("Currency rates unavailable")
			return nil
		}
		page.CurrencyRates = rates
		return nil
	})
	g.Go(func() error {
		if len(settings.UserStocks) == 0 {
			return nil
		}
		prices, err := h.market.StockPrices(ctx, settings.UserStocks)
		if err != nil {
			h.logger.WithError(err).Warn("Stock prices unavailable")
			return nil
		}
		page.StockPrices = prices
		return nil
	})
	_ = g.Wait()

	h.logger.Debug("Home page built",
		logging.F(logging.FieldStart, window.Start.Format(dateutils.LayoutOperation)),
		logging.F(logging.FieldEnd, at.Format(dateutils.LayoutOperation)),
		logging.F(logging.FieldCount, len(txs)))
	return page
}
