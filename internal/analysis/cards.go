package analysis

import (
	"encoding/json"
	"sort"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/dateutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"

	"github.com/shopspring/decimal"
)

// CardSummary is the spending of one card.
type CardSummary struct {
	LastDigits string
	TotalSpent decimal.Decimal
	Cashback   decimal.Decimal
}

type cardSummaryView struct {
	LastDigits string  `json:"last_digits" yaml:"last_digits"`
	TotalSpent float64 `json:"total_spent" yaml:"total_spent"`
	Cashback   float64 `json:"cashback" yaml:"cashback"`
}

func (c CardSummary) view() cardSummaryView {
	return cardSummaryView{LastDigits: c.LastDigits, TotalSpent: money(c.TotalSpent), Cashback: money(c.Cashback)}
}

func (c CardSummary) MarshalJSON() ([]byte, error)      { return json.Marshal(c.view()) }
func (c CardSummary) MarshalYAML() (interface{}, error) { return c.view(), nil }

// TopTransaction is one line of the largest-transactions list.
type TopTransaction struct {
	Date        string
	Amount      decimal.Decimal
	Category    string
	Description string
}

type topTransactionView struct {
	Date        string  `json:"date" yaml:"date"`
	Amount      float64 `json:"amount" yaml:"amount"`
	Category    string  `json:"category" yaml:"category"`
	Description string  `json:"description" yaml:"description"`
}

func (t TopTransaction) view() topTransactionView {
	return topTransactionView{Date: t.Date, Amount: money(t.Amount), Category: t.Category, Description: t.Description}
}

func (t TopTransaction) MarshalJSON() ([]byte, error)      { return json.Marshal(t.view()) }
func (t TopTransaction) MarshalYAML() (interface{}, error) { return t.view(), nil }

// TransactionsIn returns the dated transactions inside window.
func (a *Analyzer) TransactionsIn(table *models.Table, window dateutils.DateRange) []models.Transaction {
	log := a.logger.WithField(logging.FieldOperation, "transactions_in")
	result := []models.Transaction{}
	if table == nil {
		log.Error("No transaction table to filter")
		return result
	}
	for _, tx := range a.normalize(log, table) {
		if tx.HasDate && window.Contains(tx.OperationDate) {
			result = append(result, tx)
		}
	}
	return result
}

// CardSummaries totals debit spend per card, in order of first appearance,
// with one unit of cashback per hundred spent. Rows without a card number
// are ignored.
func (a *Analyzer) CardSummaries(txs []models.Transaction) []CardSummary {
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, tx := range txs {
		if tx.CardNumber == "" || !tx.IsDebit() {
			continue
		}
		if _, ok := totals[tx.CardNumber]; !ok {
			order = append(order, tx.CardNumber)
		}
		totals[tx.CardNumber] = totals[tx.CardNumber].Add(tx.Amount.Abs())
	}

	cards := make([]CardSummary, 0, len(order))
	for _, card := range order {
		spent := currencyutils.Round2(totals[card])
		cards = append(cards, CardSummary{
			LastDigits: card,
			TotalSpent: spent,
			Cashback:   currencyutils.PerHundred(totals[card]),
		})
	}
	return cards
}

// TopTransactions returns the n transactions with the largest absolute
// amount; equal amounts keep source order.
func (a *Analyzer) TopTransactions(txs []models.Transaction, n int) []TopTransaction {
	withAmount := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.HasAmount {
			withAmount = append(withAmount, tx)
		}
	}
	sort.SliceStable(withAmount, func(i, j int) bool {
		return withAmount[i].Amount.Abs().GreaterThan(withAmount[j].Amount.Abs())
	})
	if n >= 0 && len(withAmount) > n {
		withAmount = withAmount[:n]
	}

	top := make([]TopTransaction, 0, len(withAmount))
	for _, tx := range withAmount {
		item := TopTransaction{
			Amount:      currencyutils.Round2(tx.Amount),
			Category:    tx.Category,
			Description: tx.Description,
		}
		if tx.HasDate {
			item.Date = tx.OperationDate.Format(dateutils.LayoutDay)
		}
		top = append(top, item)
	}
	return top
}
