package main

import (
	"fmt"
	"os"

	"fjacquet/bank-insights/cmd/cashback"
	"fjacquet/bank-insights/cmd/category"
	"fjacquet/bank-insights/cmd/events"
	"fjacquet/bank-insights/cmd/export"
	"fjacquet/bank-insights/cmd/home"
	"fjacquet/bank-insights/cmd/menu"
	"fjacquet/bank-insights/cmd/p2p"
	"fjacquet/bank-insights/cmd/root"
	"fjacquet/bank-insights/cmd/savings"
	"fjacquet/bank-insights/cmd/settings"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(home.Cmd)
	root.Cmd.AddCommand(p2p.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(cashback.Cmd)
	root.Cmd.AddCommand(savings.Cmd)
	root.Cmd.AddCommand(events.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(settings.Cmd)
	root.Cmd.AddCommand(menu.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
