// Package analysis implements the transaction queries: category spending,
// P2P transfer detection, cashback estimation, round-up savings and period
// summaries. Every query works on a fresh normalization of the table and
// converts failures into an empty result plus a log entry; only the P2P
// matcher reports invalid input as an error.
package analysis

import (
	"time"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Options holds the tunables of the queries.
type Options struct {
	// WindowDays is the trailing window of SpendingByCategory.
	WindowDays int
	// CashbackRate is applied to monthly category spend.
	CashbackRate decimal.Decimal
	// TransferCategory is the label of person-to-person transfers.
	TransferCategory string
	// CashCategory is the label of cash withdrawals.
	CashCategory string
	// TopCategories is the number of expense categories listed before "Other".
	TopCategories int
	// OtherLabel names the folded remainder of a summary.
	OtherLabel string
}

// DefaultOptions returns the standard query settings.
func DefaultOptions() Options {
	return Options{
		WindowDays:       90,
		CashbackRate:     decimal.NewFromFloat(0.05),
		TransferCategory: "Transfers",
		CashCategory:     "Cash",
		TopCategories:    6,
		OtherLabel:       "Other",
	}
}

// Analyzer runs queries against a transaction table.
type Analyzer struct {
	logger logging.Logger
	opts   Options
	now    func() time.Time
}

// NewAnalyzer creates an Analyzer. A nil logger gets a default logrus one.
func NewAnalyzer(logger logging.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Analyzer{
		logger: logger.WithField(logging.FieldComponent, "analyzer"),
		opts:   opts,
		now:    time.Now,
	}
}

// WithClock replaces the clock used when a query has no reference date.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// Options returns the settings the analyzer was built with.
func (a *Analyzer) Options() Options {
	return a.opts
}

func (a *Analyzer) normalize(log logging.Logger, table *models.Table) []models.Transaction {
	txs, stats := table.Transactions()
	if stats.InvalidDates > 0 || stats.InvalidAmount > 0 {
		log.Debug("Rows with unparseable cells excluded where needed",
			logging.F("invalid_dates", stats.InvalidDates),
			logging.F("invalid_amounts", stats.InvalidAmount),
			logging.F(logging.FieldCount, stats.Rows))
	}
	return txs
}

// money converts an amount to a two-decimal float for serialization.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
