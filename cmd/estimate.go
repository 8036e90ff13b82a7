package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Show the rewards an account is accruing in the current week",
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := accountFromFlags(cmd)
		if err != nil {
			return err
		}

		c, err := newClaimer(cmd.Name())
		if err != nil {
			return err
		}
		defer c.Close()

		// nil is printed as null when no estimate is available
		estimate := c.claims.GetCurrentRewardsEstimate(context.Background(), c.config.Network, account)
		return writeJson(os.Stdout, estimate)
	},
}
