package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Layr-Labs/rewards-claimer/pkg/claims"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the unclaimed weekly rewards of an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := accountFromFlags(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString(outputFlag)

		c, err := newClaimer(cmd.Name())
		if err != nil {
			return err
		}
		defer c.Close()

		ctx := context.Background()
		if err := c.ensureNetwork(ctx); err != nil {
			return err
		}

		m, err := c.claims.GetPendingClaims(ctx, c.config.Network, account)
		if err != nil {
			c.logger.Sugar().Errorw("Failed to get pending claims", zap.Error(err))
			return err
		}

		switch output {
		case outputCsv:
			return claims.WritePendingClaimsCsv(os.Stdout, m)
		case outputJson:
			return writeJson(os.Stdout, toPendingClaimsViews(claims.SortedPendingClaims(m)))
		default:
			return fmt.Errorf("unsupported output format '%s'", output)
		}
	},
}
