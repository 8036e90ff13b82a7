package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Layr-Labs/rewards-claimer/pkg/claims"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var userClaimsCmd = &cobra.Command{
	Use:   "user-claims",
	Short: "Show pending claims together with the current rewards estimate",
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

		uc, err := c.claims.GetUserClaims(ctx, c.config.Network, account)
		if err != nil {
			c.logger.Sugar().Errorw("Failed to get user claims", zap.Error(err))
			return err
		}

		switch output {
		case outputCsv:
			return claims.WritePendingClaimsCsv(os.Stdout, uc.PendingClaimsMap)
		case outputJson:
			return writeJson(os.Stdout, &userClaimsView{
				PendingClaims:          toPendingClaimsViews(uc.PendingClaims),
				CurrentRewardsEstimate: uc.CurrentRewardsEstimate,
			})
		default:
			return fmt.Errorf("unsupported output format '%s'", output)
		}
	},
}
