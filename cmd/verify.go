package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Layr-Labs/rewards-claimer/pkg/claims"
	"github.com/Layr-Labs/rewards-claimer/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the merkle proofs of every pending claim against the rewarder contracts",
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

		ctx := context.Background()
		if err := c.ensureNetwork(ctx); err != nil {
			return err
		}

		m, err := c.claims.GetPendingClaims(ctx, c.config.Network, account)
		if err != nil {
			c.logger.Sugar().Errorw("Failed to get pending claims", zap.Error(err))
			return err
		}

		results, err := c.claims.VerifyPendingClaims(ctx, account, claims.SortedPendingClaims(m))
		if err != nil {
			return err
		}

		failed := len(utils.Filter(results, func(r *claims.ClaimVerification) bool {
			return !r.Local || !r.OnChain
		}))
		if err := writeJson(os.Stdout, toClaimVerificationViews(results)); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d claims failed verification", failed, len(results))
		}
		return nil
	},
}
