package analysis

import (
	"time"

	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
)

// SpendingByCategory returns the source rows of the debit transactions of
// category dated within the trailing WindowDays ending on ref's day, in
// source order. Every column of the row is kept. A zero ref means today.
// The result is never nil.
func (a *Analyzer) SpendingByCategory(table *models.Table, category string, ref time.Time) []models.Record {
	result := []models.Record{}
	log := a.logger.WithFields(
		logging.F(logging.FieldOperation, "spending_by_category"),
		logging.F(logging.FieldCategory, category))

	if table == nil {
		log.Error("No transaction table to filter")
		return result
	}
	if err := table.Require(models.FieldOperationDate, models.FieldAmount, models.FieldCategory); err != nil {
		log.WithError(err).Error("Cannot filter spending by category")
		return result
	}

	if ref.IsZero() {
		ref = a.now()
	}
	window := dateutils.TrailingDays(ref, a.opts.WindowDays)

	for _, tx := range a.normalize(log, table) {
		if tx.Category != category || !tx.HasDate || !tx.IsDebit() {
			continue
		}
		if window.Contains(tx.OperationDate) {
			result = append(result, table.Record(tx.Row))
		}
	}

	log.Info("Filtered spending by category",
		logging.F(logging.FieldStart, window.Start.Format(dateutils.LayoutDay)),
		logging.F(logging.FieldEnd, window.End.Format(dateutils.LayoutDay)),
		logging.F(logging.FieldCount, len(result)))
	return result
}
