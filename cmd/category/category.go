// Package category handles the spending-by-category report command
package category

import (
	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/validation"

	"github.com/spf13/cobra"
)

var (
	name string
	date string
)

// Cmd represents the category command
var Cmd = &cobra.Command{
	Use:   "category",
	Short: "Report spending of one category",
	Long: `List the debits of a category over the trailing window (90 days by
default) ending on the given date.`,
	RunE: categoryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&name, "category", "c", "", "Category to report")
	Cmd.Flags().StringVarP(&date, "date", "d", "", "Reference date (DD.MM.YYYY [HH:MM:SS]); defaults to today")
	_ = Cmd.MarkFlagRequired("category")
}

func categoryFunc(cmd *cobra.Command, args []string) error {
	ref, err := validation.ParseReferenceDate(date)
	if err != nil {
		return err
	}
	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}
	return common.Emit(env, func() []models.Record {
		return env.Category(name, ref)
	})
}
