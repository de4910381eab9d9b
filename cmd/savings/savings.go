// Package savings handles the round-up savings command
package savings

import (
	"time"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/dateutils"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// DefaultStep is the rounding step used when none is given.
const DefaultStep = 50

var (
	month string
	step  int
)

// Cmd represents the savings command
var Cmd = &cobra.Command{
	Use:   "savings",
	Short: "Compute round-up savings for a month",
	Long: `Sum what rounding every debit of the month up to the next multiple of
the step would have put aside.`,
	RunE: savingsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM or YYYY.MM); defaults to the current month")
	Cmd.Flags().IntVarP(&step, "step", "s", DefaultStep, "Rounding step (10, 50, 100, ...)")
}

func savingsFunc(cmd *cobra.Command, args []string) error {
	selector := month
	if selector == "" {
		selector = time.Now().Format(dateutils.LayoutMonth)
	}

	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	return common.Emit(env, func() decimal.Decimal {
		return env.Savings(selector, step)
	})
}
