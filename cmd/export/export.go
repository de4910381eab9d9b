// Package export handles the CSV export command
package export

import (
	"fjacquet/bank-insights/cmd/common"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/validation"

	"github.com/spf13/cobra"
)

var (
	output    string
	delimiter string
	category  string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized transactions to CSV",
	Long: `Write every transaction of the input with parsed dates and amounts to a
CSV file, or to standard output when no output file is given.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file; defaults to standard output")
	Cmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV delimiter; defaults to input.csv_delimiter")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Only export this category")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	env, err := common.NewEnv(cmd)
	if err != nil {
		return err
	}

	delim := delimiter
	if delim == "" {
		delim = env.Container.GetConfig().Input.CSVDelimiter
	}
	comma, err := validation.IsValidDelimiter(delim)
	if err != nil {
		return err
	}

	txs := Filter(env.Table, category)
	if output == "" {
		return report.ExportCSV(env.Out, txs, comma)
	}
	return report.ExportFile(env.Logger, output, txs, comma)
}

// Filter normalizes the table and keeps the rows of category, or every
// row when category is empty.
func Filter(table *models.Table, category string) []models.Transaction {
	txs, _ := table.Transactions()
	if category == "" {
		return txs
	}
	kept := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Category == category {
			kept = append(kept, tx)
		}
	}
	return kept
}
