package models

import (
	"encoding/json"
	"strings"
	"time"

	"fjacquet/bank-insights/internal/currencyutils"
	"fjacquet/bank-insights/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Transaction is the normalized view of one table row. OperationDate and
// Amount are only meaningful when HasDate and HasAmount are set.
type Transaction struct {
	Row           int
	OperationDate time.Time
	HasDate       bool
	Amount        decimal.Decimal
	HasAmount     bool
	Category      string
	Description   string
	CardNumber    string
}

// IsDebit reports a present, negative amount.
func (t Transaction) IsDebit() bool {
	return t.HasAmount && t.Amount.IsNegative()
}

// IsCredit reports a present, positive amount.
func (t Transaction) IsCredit() bool {
	return t.HasAmount && t.Amount.IsPositive()
}

// Dated reports whether the transaction has both a date and an amount.
func (t Transaction) Dated() bool {
	return t.HasDate && t.HasAmount
}

type transactionView struct {
	OperationDate string      `json:"operation_date,omitempty" yaml:"operation_date,omitempty"`
	Amount        json.Number `json:"amount,omitempty" yaml:"-"`
	AmountYAML    *float64    `json:"-" yaml:"amount,omitempty"`
	Category      string      `json:"category" yaml:"category"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	CardNumber    string      `json:"card_number,omitempty" yaml:"card_number,omitempty"`
}

func (t Transaction) view() transactionView {
	v := transactionView{
		Category:    t.Category,
		Description: t.Description,
		CardNumber:  t.CardNumber,
	}
	if t.HasDate {
		v.OperationDate = t.OperationDate.Format(dateutils.LayoutOperation)
	}
	if t.HasAmount {
		v.Amount = json.Number(t.Amount.StringFixed(2))
		f := t.Amount.Round(2).InexactFloat64()
		v.AmountYAML = &f
	}
	return v
}

// MarshalJSON renders the date in the export layout and the amount as a
// two-decimal number.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.view())
}

// MarshalYAML mirrors MarshalJSON.
func (t Transaction) MarshalYAML() (interface{}, error) {
	return t.view(), nil
}

// NormalizeStats counts cells that could not be normalized.
type NormalizeStats struct {
	Rows          int
	InvalidDates  int
	InvalidAmount int
}

// Transactions normalizes every row. Cells that fail to parse leave the
// matching Has flag unset; they never abort the batch. Missing columns
// produce empty values for the whole column.
func (t *Table) Transactions() ([]Transaction, NormalizeStats) {
	stats := NormalizeStats{Rows: t.Len()}
	txs := make([]Transaction, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		tx := Transaction{
			Row:         i,
			Category:    t.Cell(i, FieldCategory),
			Description: t.Cell(i, FieldDescription),
			CardNumber:  LastFourDigits(t.Cell(i, FieldCardNumber)),
		}

		if date, err := dateutils.ParseOperationDate(t.Cell(i, FieldOperationDate)); err == nil {
			tx.OperationDate = date
			tx.HasDate = true
		} else {
			stats.InvalidDates++
		}

		if amount, err := currencyutils.ParseAmount(t.Cell(i, FieldAmount)); err == nil {
			tx.Amount = amount
			tx.HasAmount = true
		} else {
			stats.InvalidAmount++
		}

		txs = append(txs, tx)
	}

	return txs, stats
}

// LastFourDigits keeps the last four digits of a card number ("*7197",
// "4276 **** **** 7197" and "7197" all give "7197").
func LastFourDigits(cardNumber string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)
	if len(digits) > 4 {
		return digits[len(digits)-4:]
	}
	return digits
}

// DatedAmount is a (date, amount) pair extracted for the round-up savings
// calculation. Date is "YYYY-MM-DD HH:MM:SS" or empty when unknown.
type DatedAmount struct {
	Date   string              `json:"date"`
	Amount decimal.NullDecimal `json:"amount"`
}
