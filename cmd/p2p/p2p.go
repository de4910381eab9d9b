// Package p2p handles the person-to-person transfer search command
package p2p

import (
	"fjacquet/bank-insights/cmd/common"

	"github.com/spf13/cobra"
)

// Cmd represents the p2p command
var Cmd = &cobra.Command{
	Use:   "p2p",
	Short: "Find transfers to private persons",
	Long: `List the rows of the transfer category whose description looks like a
personal name ("Ivan I.").`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := common.NewEnv(cmd)
		if err != nil {
			return err
		}
		return common.Emit(env, env.P2P)
	},
}
