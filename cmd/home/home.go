// Package home handles the home page command
package home

import (
	"time"

	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/validation"
	"fjacquet/bank-insights/internal/views"

	"github.com/spf13/cobra"
)

var at string

// Cmd represents the home command
var Cmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home page",
	Long: `Show a greeting, per-card spending and cashback, the five largest
transactions of the month to date, and the rates and prices of the
currencies and stocks listed in the user settings.`,
	RunE: homeFunc,
}

func init() {
	Cmd.Flags().StringVar(&at, "at", "", "Reference moment (DD.MM.YYYY HH:MM:SS, or DD.MM.YYYY for the whole day); defaults to now")
}

func homeFunc(cmd *cobra.Command, args []string) error {
	ref, err := validation.ParseReferenceMoment(at, time.Now())
	if err != nil {
		return err
	}
	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	return common.Emit(env, func() views.Page {
		return env.Home(cmd.Context(), ref)
	})
}
