package report

import (
	"fmt"
	"sort"

	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Section is one titled block of the table renderer.
type Section struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Tabular is implemented by results that lay themselves out as tables.
type Tabular interface {
	Sections() []Section
}

// Amount formats a decimal with thousands separators and two decimals.
func Amount(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

func sectionsOf(result interface{}) ([]Section, bool) {
	switch v := result.(type) {
	case Tabular:
		return v.Sections(), true
	case []models.Record:
		return []Section{recordSection(v)}, true
	case analysis.CashbackReport:
		return []Section{cashbackSection(v)}, true
	case decimal.Decimal:
		return []Section{{Header: []string{"Total"}, Rows: [][]string{{Amount(v)}}}}, true
	case *analysis.PeriodSummary:
		if v == nil {
			return nil, true
		}
		return periodSections(v), true
	case []analysis.CardSummary:
		return []Section{CardSection(v)}, true
	case []analysis.TopTransaction:
		return []Section{TopSection(v)}, true
	default:
		return nil, false
	}
}

func recordSection(records []models.Record) Section {
	var section Section
	for i, record := range records {
		row := make([]string, 0, len(record))
		for _, cell := range record {
			if i == 0 {
				section.Header = append(section.Header, cell.Column)
			}
			row = append(row, cell.Value)
		}
		section.Rows = append(section.Rows, row)
	}
	return section
}

func cashbackSection(r analysis.CashbackReport) Section {
	categories := make([]string, 0, len(r))
	for category := range r {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := r[categories[i]], r[categories[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return categories[i] < categories[j]
	})

	section := Section{Header: []string{"Category", "Cashback"}}
	for _, category := range categories {
		section.Rows = append(section.Rows, []string{category, Amount(r[category])})
	}
	return section
}

func categorySection(title string, entries []analysis.CategoryAmount) Section {
	section := Section{Title: title, Header: []string{"Category", "Amount"}}
	for _, e := range entries {
		section.Rows = append(section.Rows, []string{e.Category, Amount(e.Amount)})
	}
	return section
}

func periodSections(s *analysis.PeriodSummary) []Section {
	span := dateutils.DateRange{Start: s.Start, End: s.End}.String()
	return []Section{
		categorySection(fmt.Sprintf("Expenses %s (period %s): %s", span, s.Period, Amount(s.Expenses.Total)), s.Expenses.Main),
		categorySection("Transfers and cash", s.Expenses.TransfersAndCash),
		categorySection(fmt.Sprintf("Income: %s", Amount(s.Income.Total)), s.Income.Main),
	}
}

// CardSection lays out per-card spending.
func CardSection(cards []analysis.CardSummary) Section {
	section := Section{Title: "Cards", Header: []string{"Card", "Spent", "Cashback"}}
	for _, c := range cards {
		section.Rows = append(section.Rows, []string{c.LastDigits, Amount(c.TotalSpent), Amount(c.Cashback)})
	}
	return section
}

// TopSection lays out the largest transactions.
func TopSection(top []analysis.TopTransaction) Section {
	section := Section{Title: "Top transactions", Header: []string{"Date", "Amount", "Category", "Description"}}
	for _, t := range top {
		section.Rows = append(section.Rows, []string{t.Date, Amount(t.Amount), t.Category, t.Description})
	}
	return section
}
