// Package cashback handles the cashback estimation command
package cashback

import (
	"time"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/analysis"

	"github.com/spf13/cobra"
)

var (
	year  int
	month int
)

// Cmd represents the cashback command
var Cmd = &cobra.Command{
	Use:   "cashback",
	Short: "Estimate cashback per category for a month",
	RunE:  cashbackFunc,
}

func init() {
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "Year; defaults to the current year")
	Cmd.Flags().IntVarP(&month, "month", "m", 0, "Month (1-12); defaults to the current month")
}

func cashbackFunc(cmd *cobra.Command, args []string) error {
	now := time.Now()
	y, m := year, time.Month(month)
	if y == 0 {
		y = now.Year()
	}
	if m == 0 {
		m = now.Month()
	}

	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	return common.Emit(env, func() analysis.CashbackReport {
		return env.Cashback(y, m)
	})
}
