// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/container"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/validation"
	"fjacquet/bank-insights/internal/views"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Env is what a command needs to answer a query: the loaded table, the
// wired dependencies and the output settings.
type Env struct {
	Container  *container.Container
	Table      *models.Table
	Logger     logging.Logger
	Out        io.Writer
	Format     string
	Save       bool
	ReportFile string
}

// NewEnv builds an Env from the initialized root command state.
func NewEnv(cmd *cobra.Command) (*Env, error) {
	c := root.GetContainer()
	if c == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return NewEnvFor(c, root.SharedFlags, cmd.OutOrStdout())
}

// NewEnvFor builds an Env from explicit dependencies and flags.
func NewEnvFor(c *container.Container, flags root.CommonFlags, out io.Writer) (*Env, error) {
	cfg := c.GetConfig()

	format := flags.Format
	if format == "" {
		format = cfg.Output.Format
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return nil, err
	}

	input := flags.Input
	if input == "" {
		input = cfg.Input.File
	}

	logger := c.GetLogger()
	var table *models.Table
	if err := validation.IsValidInputFile(input); err != nil {
		logger.WithError(err).Error("Cannot read input file")
		table = models.NewTable(nil, nil)
	} else {
		table = c.LoadTable(input)
	}

	return &Env{
		Container:  c,
		Table:      table,
		Logger:     logger,
		Out:        out,
		Format:     format,
		Save:       flags.SaveReport || flags.ReportFile != "" || cfg.Report.Enabled,
		ReportFile: flags.ReportFile,
	}, nil
}

// Emit runs query, persists its result when reports are enabled and
// renders it to the output.
func Emit[T any](env *Env, query func() T) error {
	var writer *report.Writer
	if env.Save {
		writer = env.Container.GetReportWriter()
	}
	result := report.Persist(writer, env.ReportFile, query)
	return report.Render(env.Out, env.Format, result)
}

// Analyzer is a shortcut to the container's analyzer.
func (e *Env) Analyzer() *analysis.Analyzer {
	return e.Container.GetAnalyzer()
}

// Home builds the home page as of at; a zero at means now.
func (e *Env) Home(ctx context.Context, at time.Time) views.Page {
	if ctx == nil {
		ctx = context.Background()
	}
	if at.IsZero() {
		at = time.Now()
	}
	return e.Container.GetHomePage().Build(ctx, e.Table, at)
}

// P2P lists person-to-person transfers. Invalid input is logged and gives
// an empty list.
func (e *Env) P2P() []models.Record {
	records, err := e.Analyzer().FindP2PTransfers(e.Table)
	if err != nil {
		e.Logger.WithError(err).Error("P2P transfer search failed")
		return []models.Record{}
	}
	return records
}

// Category lists the debits of category in the trailing window ending at ref.
func (e *Env) Category(category string, ref time.Time) []models.Record {
	return e.Analyzer().SpendingByCategory(e.Table, category, ref)
}

// Cashback estimates the cashback of year/month.
func (e *Env) Cashback(year int, month time.Month) analysis.CashbackReport {
	return e.Analyzer().CashbackByCategory(e.Table, year, month)
}

// Savings computes the round-up savings of month with the given step.
func (e *Env) Savings(month string, step int) decimal.Decimal {
	return e.Analyzer().RoundUpSavings(month, e.Analyzer().DatedAmounts(e.Table), step)
}

// Events summarizes the period ending at end.
func (e *Env) Events(end time.Time, period string) *analysis.PeriodSummary {
	return e.Analyzer().SummarizePeriod(e.Table, end, period)
}
