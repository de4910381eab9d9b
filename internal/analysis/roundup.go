package analysis

import (
	"strings"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// RoundUpRemainder returns how much rounding |amount| up to the next
// multiple of step adds. An exact multiple still moves up a full step, so
// every debit contributes something: 100 at step 100 gives 100.
func RoundUpRemainder(amount, step decimal.Decimal) decimal.Decimal {
	abs := amount.Abs()
	rounded := abs.Div(step).Floor().Add(decimal.NewFromInt(1)).Mul(step)
	return rounded.Sub(abs)
}

// DatedAmounts extracts (date, amount) pairs from the table in source
// order. Unparseable cells become an empty date or a null amount.
func (a *Analyzer) DatedAmounts(table *models.Table) []models.DatedAmount {
	log := a.logger.WithField(logging.FieldOperation, "dated_amounts")
	if table == nil {
		log.Error("No transaction table to extract from")
		return []models.DatedAmount{}
	}

	txs := a.normalize(log, table)
	pairs := make([]models.DatedAmount, 0, len(txs))
	for _, tx := range txs {
		pair := models.DatedAmount{}
		if tx.HasDate {
			pair.Date = tx.OperationDate.Format(dateutils.LayoutISOFull)
		}
		if tx.HasAmount {
			pair.Amount = decimal.NewNullDecimal(tx.Amount)
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// RoundUpSavings sums RoundUpRemainder over the debits of month ("YYYY-MM"
// or "YYYY.MM"), rounded to two places. Pairs with no date, no amount or a
// zero amount are skipped. An invalid month or a non-positive step gives
// zero.
func (a *Analyzer) RoundUpSavings(month string, txs []models.DatedAmount, step int) decimal.Decimal {
	log := a.logger.WithFields(
		logging.F(logging.FieldOperation, "round_up_savings"),
		logging.F(logging.FieldMonth, month),
		logging.F(logging.FieldStep, step))

	selector, err := dateutils.NormalizeMonthSelector(month)
	if err != nil {
		log.WithError(err).Error("Cannot compute round-up savings")
		return decimal.Zero
	}
	if step <= 0 {
		log.Error("Rounding step must be positive")
		return decimal.Zero
	}

	stepDec := decimal.NewFromInt(int64(step))
	total := decimal.Zero
	counted := 0
	for _, tx := range txs {
		if tx.Date == "" || !tx.Amount.Valid || tx.Amount.Decimal.IsZero() {
			continue
		}
		if !strings.HasPrefix(tx.Date, selector) || !tx.Amount.Decimal.IsNegative() {
			continue
		}
		total = total.Add(RoundUpRemainder(tx.Amount.Decimal, stepDec))
		counted++
	}

	total = currencyutils.Round2(total)
	log.Info("Computed round-up savings",
		logging.F(logging.FieldCount, counted),
		logging.F("total", total.StringFixed(2)))
	return total
}
