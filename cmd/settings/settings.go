// Package settings handles the user settings commands
package settings

import (
	"fmt"
	"strings"

	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/store"
	"fjacquet/bank-insights/internal/validation"

	"github.com/spf13/cobra"
)

var (
	currencies []string
	stocks     []string
)

// Cmd represents the settings command
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or edit the tracked currencies and stocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settingsStore()
		if err != nil {
			return err
		}
		return show(cmd, s.LoadSettings())
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Track more currencies or stocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(current store.UserSettings) store.UserSettings {
			current.UserCurrencies = append(current.UserCurrencies, currencies...)
			current.UserStocks = append(current.UserStocks, stocks...)
			return current
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Stop tracking currencies or stocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return update(cmd, func(current store.UserSettings) store.UserSettings {
			current.UserCurrencies = Without(current.UserCurrencies, currencies)
			current.UserStocks = Without(current.UserStocks, stocks)
			return current
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, removeCmd} {
		c.Flags().StringSliceVar(&currencies, "currency", nil, "Currency codes (USD,EUR)")
		c.Flags().StringSliceVar(&stocks, "stock", nil, "Stock tickers (AAPL,AMZN)")
	}
	Cmd.AddCommand(addCmd, removeCmd)
}

func settingsStore() (*store.SettingsStore, error) {
	c := root.GetContainer()
	if c == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return c.GetSettingsStore(), nil
}

func update(cmd *cobra.Command, change func(store.UserSettings) store.UserSettings) error {
	if len(currencies) == 0 && len(stocks) == 0 {
		return fmt.Errorf("nothing to change: pass --currency or --stock")
	}
	s, err := settingsStore()
	if err != nil {
		return err
	}
	updated := change(s.LoadSettings())
	if err := s.SaveSettings(updated); err != nil {
		return err
	}
	return show(cmd, s.LoadSettings())
}

func show(cmd *cobra.Command, settings store.UserSettings) error {
	format := root.SharedFlags.Format
	if format == "" && root.AppConfig != nil {
		format = root.AppConfig.Output.Format
	}
	if format == "" {
		format = report.FormatJSON
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), format, settings)
}

// Without returns codes minus the ones listed in drop, compared
// case-insensitively.
func Without(codes, drop []string) []string {
	dropped := map[string]bool{}
	for _, d := range drop {
		dropped[strings.ToUpper(strings.TrimSpace(d))] = true
	}
	kept := make([]string, 0, len(codes))
	for _, c := range codes {
		if !dropped[strings.ToUpper(c)] {
			kept = append(kept, c)
		}
	}
	return kept
}
