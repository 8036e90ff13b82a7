package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/internal/tracer"
	"github.com/Layr-Labs/rewards-claimer/internal/version"
	"github.com/Layr-Labs/rewards-claimer/pkg/claims"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ethereum"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ipfs"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/liquidityMining"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller/merkleRedeemCaller"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus"
	"github.com/Layr-Labs/rewards-claimer/pkg/logger"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	"github.com/Layr-Labs/rewards-claimer/pkg/proofs"
	"github.com/Layr-Labs/rewards-claimer/pkg/reportCache"
	"github.com/Layr-Labs/rewards-claimer/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	accountFlag  = "account"
	outputFlag   = "output"
	dryRunFlag   = "dry-run"
	intervalFlag = "interval"

	outputJson = "json"
	outputCsv  = "csv"
)

// claimer holds the wired services shared by every command.
type claimer struct {
	config   *config.Config
	logger   *zap.Logger
	sink     *metrics.MetricsSink
	eventBus *eventBus.EventBus
	client   *ethereum.Client
	cache    reportCache.ReportCache
	proofs   *proofs.ClaimProofsStore
	claims   *claims.ClaimsService
}

func newClaimer(cmdName string) (*claimer, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := cfg.LoadNetworkTableOverrides(); err != nil {
		l.Sugar().Errorw("Failed to load claims config file", zap.Error(err))
		return nil, err
	}

	l.Sugar().Infow("rewards-claimer "+cmdName,
		zap.String("version", version.GetVersion()),
		zap.String("commit", version.GetCommit()),
		zap.String("network", cfg.Network.String()),
	)

	tracer.StartTracer(cfg.DataDogConfig.TracingConfig.Enabled, cfg.Network)

	metricsClients, err := metrics.InitMetricsSinksFromConfig(cfg, l)
	if err != nil {
		l.Sugar().Errorw("Failed to setup metrics sink", zap.Error(err))
		return nil, err
	}

	sink, err := metrics.NewMetricsSink(&metrics.MetricsSinkConfig{}, metricsClients)
	if err != nil {
		l.Sugar().Errorw("Failed to setup metrics sink", zap.Error(err))
		return nil, err
	}

	cache, err := reportCache.NewReportCacheFromConfig(&cfg.ReportCacheConfig, sink, l)
	if err != nil {
		l.Sugar().Errorw("Failed to setup report cache", zap.Error(err))
		return nil, err
	}

	eb := eventBus.NewEventBus(l)

	client := ethereum.NewClient(ethereum.ConvertGlobalConfigToEthereumConfig(&cfg.EthereumRpcConfig), l)
	caller := merkleRedeemCaller.NewMerkleRedeemCaller(client, l)
	cps := proofs.NewClaimProofsStore(caller, l)

	documents := ipfs.NewIpfs(ipfs.DefaultHttpClient(), cfg.IpfsConfig.Gateway, cache, sink, l)
	estimates := liquidityMining.NewClient(liquidityMining.DefaultHttpClient(), cfg.LiquidityMiningConfig.ApiUrl, l)

	cs := claims.NewClaimsService(cfg, documents, caller, cps, estimates, eb, sink, l)

	return &claimer{
		config:   cfg,
		logger:   l,
		sink:     sink,
		eventBus: eb,
		client:   client,
		cache:    cache,
		proofs:   cps,
		claims:   cs,
	}, nil
}

func (c *claimer) Close() {
	if err := c.cache.Close(); err != nil {
		c.logger.Sugar().Errorw("Failed to close report cache", zap.Error(err))
	}
	c.sink.Flush()
	tracer.StopTracer()
	_ = c.logger.Sync()
}

// ensureNetwork fails when the rpc endpoint serves another chain than the configured network.
func (c *claimer) ensureNetwork(ctx context.Context) error {
	if err := c.client.EnsureNetwork(ctx, c.config.Network); err != nil {
		c.logger.Sugar().Errorw("RPC endpoint does not match the configured network",
			zap.String("network", c.config.Network.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func accountFromFlags(cmd *cobra.Command) (string, error) {
	account, err := cmd.Flags().GetString(accountFlag)
	if err != nil {
		return "", err
	}
	if account == "" {
		return "", fmt.Errorf("--%s is required", accountFlag)
	}
	checksummed, ok := utils.ChecksumAddress(account)
	if !ok {
		return "", fmt.Errorf("invalid account '%s'", account)
	}
	return checksummed, nil
}

func writeJson(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
