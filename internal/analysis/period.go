package analysis

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// Period selects the summarization window.
type Period string

const (
	PeriodWeek  Period = "W"
	PeriodMonth Period = "M"
	PeriodYear  Period = "Y"
	PeriodAll   Period = "ALL"
)

// ParsePeriod maps a code to a Period, case-insensitively. Unknown codes
// return PeriodMonth and false.
func ParsePeriod(code string) (Period, bool) {
	switch Period(strings.ToUpper(strings.TrimSpace(code))) {
	case PeriodWeek:
		return PeriodWeek, true
	case PeriodMonth:
		return PeriodMonth, true
	case PeriodYear:
		return PeriodYear, true
	case PeriodAll:
		return PeriodAll, true
	default:
		return PeriodMonth, false
	}
}

// CategoryAmount is one line of a summary.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

type categoryAmountView struct {
	Category string  `json:"category" yaml:"category"`
	Amount   float64 `json:"amount" yaml:"amount"`
}

func (c CategoryAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(categoryAmountView{Category: c.Category, Amount: money(c.Amount)})
}

func (c CategoryAmount) MarshalYAML() (interface{}, error) {
	return categoryAmountView{Category: c.Category, Amount: money(c.Amount)}, nil
}

// ExpenseSummary lists spending as positive amounts.
type ExpenseSummary struct {
	Total            decimal.Decimal
	Main             []CategoryAmount
	TransfersAndCash []CategoryAmount
}

// IncomeSummary lists income per category.
type IncomeSummary struct {
	Total decimal.Decimal
	Main  []CategoryAmount
}

// PeriodSummary is the result of SummarizePeriod.
type PeriodSummary struct {
	Period   Period
	Start    time.Time
	End      time.Time
	Expenses ExpenseSummary
	Income   IncomeSummary
}

type periodSummaryView struct {
	Period   string `json:"period" yaml:"period"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Expenses struct {
		Total            float64          `json:"total_amount" yaml:"total_amount"`
		Main             []CategoryAmount `json:"main" yaml:"main"`
		TransfersAndCash []CategoryAmount `json:"transfers_and_cash" yaml:"transfers_and_cash"`
	} `json:"expenses" yaml:"expenses"`
	Income struct {
		Total float64          `json:"total_amount" yaml:"total_amount"`
		Main  []CategoryAmount `json:"main" yaml:"main"`
	} `json:"income" yaml:"income"`
}

func (s PeriodSummary) view() periodSummaryView {
	var v periodSummaryView
	v.Period = string(s.Period)
	v.Start = s.Start.Format(dateutils.LayoutDay)
	v.End = s.End.Format(dateutils.LayoutDay)
	v.Expenses.Total = money(s.Expenses.Total)
	v.Expenses.Main = s.Expenses.Main
	v.Expenses.TransfersAndCash = s.Expenses.TransfersAndCash
	v.Income.Total = money(s.Income.Total)
	v.Income.Main = s.Income.Main
	return v
}

func (s PeriodSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.view())
}

func (s PeriodSummary) MarshalYAML() (interface{}, error) {
	return s.view(), nil
}

// SummarizePeriod buckets the table into the window selected by code and
// ending on end's day (zero end means today), then splits expenses from
// income. Unknown codes fall back to the calendar month. It returns nil when
// the table cannot be summarized.
func (a *Analyzer) SummarizePeriod(table *models.Table, end time.Time, code string) *PeriodSummary {
	period, known := ParsePeriod(code)
	log := a.logger.WithFields(
		logging.F(logging.FieldOperation, "summarize_period"),
		logging.F(logging.FieldPeriod, string(period)))
	if !known {
		log.Warn("Unknown period code, using calendar month", logging.F("code", code))
	}

	if table == nil {
		log.Error("No transaction table to summarize")
		return nil
	}
	if err := table.Require(models.FieldOperationDate, models.FieldAmount, models.FieldCategory); err != nil {
		log.WithError(err).Error("Cannot summarize period")
		return nil
	}

	if end.IsZero() {
		end = a.now()
	}
	txs := a.normalize(log, table)

	window := dateutils.DateRange{End: dateutils.EndOfDay(end)}
	switch period {
	case PeriodWeek:
		window.Start = dateutils.StartOfWeek(end)
	case PeriodYear:
		window.Start = dateutils.StartOfYear(end)
	case PeriodAll:
		earliest, ok := earliestDate(txs)
		if !ok {
			log.Error("No dated transactions to summarize")
			return nil
		}
		window.Start = earliest
	default:
		window.Start = dateutils.StartOfMonth(end)
	}

	var expenses, income []models.Transaction
	for _, tx := range txs {
		if !tx.Dated() || !window.Contains(tx.OperationDate) {
			continue
		}
		switch {
		case tx.IsDebit():
			expenses = append(expenses, tx)
		case tx.IsCredit():
			income = append(income, tx)
		}
	}

	summary := &PeriodSummary{
		Period: period,
		Start:  window.Start,
		End:    window.End,
		Expenses: ExpenseSummary{
			Total: sumAbs(expenses),
			Main:  rankCategories(expenses, topCategories(expenses, a.opts.TopCategories), a.opts.OtherLabel),
			TransfersAndCash: rankCategories(
				filterCategories(expenses, a.opts.CashCategory, a.opts.TransferCategory),
				[]string{a.opts.CashCategory, a.opts.TransferCategory}, ""),
		},
		Income: IncomeSummary{
			Total: sumAbs(income),
			Main:  rankCategories(income, categoriesInOrder(income), ""),
		},
	}

	log.Info("Summarized period",
		logging.F(logging.FieldStart, window.Start.Format(dateutils.LayoutDay)),
		logging.F(logging.FieldEnd, window.End.Format(dateutils.LayoutDay)),
		logging.F("expenses", len(expenses)),
		logging.F("income", len(income)))
	return summary
}

func earliestDate(txs []models.Transaction) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, tx := range txs {
		if !tx.HasDate {
			continue
		}
		if !found || tx.OperationDate.Before(earliest) {
			earliest = tx.OperationDate
			found = true
		}
	}
	return earliest, found
}

func sumAbs(txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount.Abs())
	}
	return currencyutils.Round2(total)
}

func categoriesInOrder(txs []models.Transaction) []string {
	seen := map[string]bool{}
	var categories []string
	for _, tx := range txs {
		if !seen[tx.Category] {
			seen[tx.Category] = true
			categories = append(categories, tx.Category)
		}
	}
	return categories
}

// topCategories returns the n most frequent categories; ties keep the order
// of first appearance.
func topCategories(txs []models.Transaction, n int) []string {
	counts := map[string]int{}
	for _, tx := range txs {
		counts[tx.Category]++
	}
	categories := categoriesInOrder(txs)
	sort.SliceStable(categories, func(i, j int) bool {
		return counts[categories[i]] > counts[categories[j]]
	})
	if n >= 0 && len(categories) > n {
		categories = categories[:n]
	}
	return categories
}

func filterCategories(txs []models.Transaction, categories ...string) []models.Transaction {
	var out []models.Transaction
	for _, tx := range txs {
		for _, c := range categories {
			if tx.Category == c {
				out = append(out, tx)
				break
			}
		}
	}
	return out
}

// rankCategories totals |amount| per listed category, sorted by descending
// amount. With a non-empty other label, the remaining categories are folded
// into one trailing entry when their total is strictly positive.
func rankCategories(txs []models.Transaction, categories []string, other string) []CategoryAmount {
	listed := make(map[string]bool, len(categories))
	for _, c := range categories {
		listed[c] = true
	}

	totals := map[string]decimal.Decimal{}
	rest := decimal.Zero
	for _, tx := range txs {
		if listed[tx.Category] {
			totals[tx.Category] = totals[tx.Category].Add(tx.Amount.Abs())
		} else {
			rest = rest.Add(tx.Amount.Abs())
		}
	}

	entries := []CategoryAmount{}
	for _, c := range categories {
		if total, ok := totals[c]; ok {
			entries = append(entries, CategoryAmount{Category: c, Amount: currencyutils.Round2(total)})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})

	if other != "" && rest.IsPositive() {
		entries = append(entries, CategoryAmount{Category: other, Amount: currencyutils.Round2(rest)})
	}
	return entries
}
