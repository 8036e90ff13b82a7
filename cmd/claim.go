package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/claims"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type claimResultView struct {
	Account         string `json:"account"`
	TransactionHash string `json:"transactionHash"`
	Sent            bool   `json:"sent"`
	Claims          int    `json:"claims"`
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim all pending rewards of the signer account in one transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool(dryRunFlag)

		c, err := newClaimer(cmd.Name())
		if err != nil {
			return err
		}
		defer c.Close()

		if c.config.SignerConfig.PrivateKey == "" {
			return fmt.Errorf("%s is required", config.SignerPrivateKey)
		}
		key, err := crypto.HexToECDSA(strings.TrimPrefix(c.config.SignerConfig.PrivateKey, "0x"))
		if err != nil {
			return fmt.Errorf("invalid signer private key: %w", err)
		}

		ctx := context.Background()
		if err := c.ensureNetwork(ctx); err != nil {
			return err
		}
		chainId, err := c.client.ChainId(ctx)
		if err != nil {
			return err
		}
		backend, err := c.client.GetEthereumContractCaller()
		if err != nil {
			return err
		}

		opts, err := bind.NewKeyedTransactorWithChainID(key, chainId)
		if err != nil {
			return fmt.Errorf("failed to create transactor: %w", err)
		}
		opts.NoSend = dryRun
		account := opts.From.Hex()

		m, err := c.claims.GetPendingClaims(ctx, c.config.Network, account)
		if err != nil {
			c.logger.Sugar().Errorw("Failed to get pending claims", zap.Error(err))
			return err
		}
		pending := claims.SortedPendingClaims(m)

		claimCount := 0
		for _, p := range pending {
			claimCount += len(p.Claims)
		}

		tx, err := c.claims.ClaimRewards(ctx, c.config.Network, backend, opts, account, pending)
		if errors.Is(err, claims.ErrNothingToClaim) {
			c.logger.Sugar().Infow("Nothing to claim", zap.String("account", account))
			return nil
		}
		if err != nil {
			return err
		}

		return writeJson(os.Stdout, &claimResultView{
			Account:         account,
			TransactionHash: tx.Hash().Hex(),
			Sent:            !dryRun,
			Claims:          claimCount,
		})
	},
}
