// Package events handles the period summary command
package events

import (
	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/validation"

	"github.com/spf13/cobra"
)

var (
	date   string
	period string
)

// Cmd represents the events command
var Cmd = &cobra.Command{
	Use:   "events",
	Short: "Summarize expenses and income over a period",
	Long: `Summarize the week (W), calendar month (M), year (Y) or whole history
(ALL) ending on the given date: top expense categories, transfers and cash,
and income per category.`,
	RunE: eventsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&date, "date", "d", "", "End of the period (DD.MM.YYYY [HH:MM:SS]); defaults to today")
	Cmd.Flags().StringVarP(&period, "period", "p", string(analysis.PeriodMonth), "Period: W, M, Y or ALL")
}

func eventsFunc(cmd *cobra.Command, args []string) error {
	end, err := validation.ParseReferenceDate(date)
	if err != nil {
		return err
	}
	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	return common.Emit(env, func() *analysis.PeriodSummary {
		return env.Events(end, period)
	})
}
