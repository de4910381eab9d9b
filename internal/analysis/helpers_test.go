package analysis

import (
	"time"

	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
)

var englishColumns = []string{"Operation date", "Card number", "Amount", "Category", "Description"}

func newTestAnalyzer() (*Analyzer, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	a := NewAnalyzer(logger, DefaultOptions()).WithClock(func() time.Time {
		return time.Date(2022, time.January, 15, 12, 0, 0, 0, time.Local)
	})
	return a, logger
}

func row(date, card, amount, category, description string) []string {
	return []string{date, card, amount, category, description}
}

func tableOf(rows ...[]string) *models.Table {
	return models.NewTable(englishColumns, rows)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
