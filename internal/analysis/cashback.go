package analysis

import (
	"encoding/json"
	"time"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// CashbackReport maps a category to its estimated cashback.
type CashbackReport map[string]decimal.Decimal

func (r CashbackReport) view() map[string]float64 {
	out := make(map[string]float64, len(r))
	for category, amount := range r {
		out[category] = money(amount)
	}
	return out
}

// MarshalJSON renders amounts as numbers.
func (r CashbackReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.view())
}

// MarshalYAML renders amounts as numbers.
func (r CashbackReport) MarshalYAML() (interface{}, error) {
	return r.view(), nil
}

// Total sums the per-category values.
func (r CashbackReport) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range r {
		total = total.Add(amount)
	}
	return total
}

// CashbackByCategory sums the absolute debit amounts of each category in
// year/month and applies CashbackRate, rounding every category to two
// places. Categories without spend are absent. Failures give an empty map.
func (a *Analyzer) CashbackByCategory(table *models.Table, year int, month time.Month) CashbackReport {
	result := CashbackReport{}
	log := a.logger.WithFields(
		logging.F(logging.FieldOperation, "cashback_by_category"),
		logging.F(logging.FieldYear, year),
		logging.F(logging.FieldMonth, int(month)))

	if month < time.January || month > time.December {
		log.Error("Month must be between 1 and 12")
		return result
	}
	if table == nil {
		log.Error("No transaction table to analyze")
		return result
	}
	if err := table.Require(models.FieldOperationDate, models.FieldAmount, models.FieldCategory); err != nil {
		log.WithError(err).Error("Cannot analyze cashback categories")
		return result
	}

	spend := map[string]decimal.Decimal{}
	for _, tx := range a.normalize(log, table) {
		if !tx.HasDate || !tx.IsDebit() {
			continue
		}
		if tx.OperationDate.Year() != year || tx.OperationDate.Month() != month {
			continue
		}
		spend[tx.Category] = spend[tx.Category].Add(tx.Amount.Abs())
	}

	for category, total := range spend {
		if total.IsPositive() {
			result[category] = currencyutils.Round2(total.Mul(a.opts.CashbackRate))
		}
	}

	log.Info("Analyzed cashback categories", logging.F(logging.FieldCount, len(result)))
	return result
}
