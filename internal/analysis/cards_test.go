package analysis

import (
	"encoding/json"
	"testing"

	"fjacquet/bank-insights/internal/dateutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardSummaries(t *testing.T) {
	a, _ := newTestAnalyzer()
	table := tableOf(
		row("01.12.2021 10:00:00", "*7197", "-1262,00", "Groceries", ""),
		row("02.12.2021 10:00:00", "*5091", "-100,00", "Fuel", ""),
		row("03.12.2021 10:00:00", "*7197", "-38,00", "Groceries", ""),
		row("04.12.2021 10:00:00", "*7197", "500,00", "Refund", ""),
		row("05.12.2021 10:00:00", "", "-10,00", "Cash", ""),
	)
	txs, _ := table.Transactions()

	cards := a.CardSummaries(txs)

	require.Len(t, cards, 2)
	assert.Equal(t, "7197", cards[0].LastDigits)
	assert.Equal(t, "1300.00", cards[0].TotalSpent.StringFixed(2))
	assert.Equal(t, "13.00", cards[0].Cashback.StringFixed(2))
	assert.Equal(t, "5091", cards[1].LastDigits)
	assert.Equal(t, "1.00", cards[1].Cashback.StringFixed(2))

	data, err := json.Marshal(cards[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"last_digits":"5091","total_spent":100,"cashback":1}`, string(data))
}

func TestTopTransactions(t *testing.T) {
	a, _ := newTestAnalyzer()
	table := tableOf(
		row("01.12.2021 10:00:00", "", "-10,00", "A", "small"),
		row("02.12.2021 10:00:00", "", "1000,00", "Salary", "income"),
		row("03.12.2021 10:00:00", "", "-300,00", "B", "first 300"),
		row("04.12.2021 10:00:00", "", "300,00", "C", "second 300"),
		row("05.12.2021 10:00:00", "", "oops", "D", "no amount"),
	)
	txs, _ := table.Transactions()

	top := a.TopTransactions(txs, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "income", top[0].Description)
	assert.Equal(t, "02.12.2021", top[0].Date)
	assert.Equal(t, "first 300", top[1].Description)
	assert.Equal(t, "-300.00", top[1].Amount.StringFixed(2))
	assert.Equal(t, "second 300", top[2].Description)

	assert.Len(t, a.TopTransactions(txs, 10), 4)
	assert.Empty(t, a.TopTransactions(nil, 5))
}

func TestTransactionsIn(t *testing.T) {
	a, _ := newTestAnalyzer()
	table := tableOf(
		row("30.11.2021 23:59:59", "", "-1,00", "A", ""),
		row("01.12.2021 00:00:00", "", "-2,00", "A", ""),
		row("15.12.2021 12:00:00", "", "-3,00", "A", ""),
		row("broken", "", "-4,00", "A", ""),
	)
	window := dateutils.DateRange{Start: day(2021, 12, 1), End: dateutils.EndOfDay(day(2021, 12, 15))}

	txs := a.TransactionsIn(table, window)

	require.Len(t, txs, 2)
	assert.Equal(t, 1, txs[0].Row)
	assert.Equal(t, 2, txs[1].Row)
	assert.Empty(t, a.TransactionsIn(nil, window))
}
