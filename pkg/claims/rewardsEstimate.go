package claims

import (
	"context"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/liquidityMining"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics/metricsTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetCurrentRewardsEstimate returns the accruing reward estimate of account for the network's reward token.
// It is best effort: every failure is logged and yields nil.
func (cs *ClaimsService) GetCurrentRewardsEstimate(ctx context.Context, network config.Network, account string) *CurrentRewardsEstimate {
	rewardToken := cs.config.GetRewardTokenForNetwork(network)
	if rewardToken == "" || cs.estimates == nil {
		cs.logger.Sugar().Debugw("No reward token configured for network", zap.String("network", network.String()))
		return nil
	}

	res, err := cs.estimates.GetLiquidityProviderMultitoken(ctx, account)
	if err != nil {
		cs.estimateFailed(network, "request", err)
		return nil
	}
	if !res.Success {
		cs.estimateFailed(network, "unsuccessful", nil)
		return nil
	}

	rewards := decimal.Zero
	velocity := ""
	tokenProviders := utils.Filter(res.Result.LiquidityProviders, func(lp liquidityMining.LiquidityProvider) bool {
		return utils.AreAddressesEqual(lp.TokenAddress, rewardToken)
	})
	for _, lp := range tokenProviders {
		estimate, err := decimal.NewFromString(lp.CurrentEstimate)
		if err != nil {
			cs.estimateFailed(network, "parse", err)
			return nil
		}
		rewards = rewards.Add(estimate)

		if velocity == "" {
			if v, err := decimal.NewFromString(lp.Velocity); err == nil && v.IsPositive() {
				velocity = lp.Velocity
			}
		}
	}
	if velocity == "" {
		velocity = "0"
	}

	return &CurrentRewardsEstimate{
		Rewards:   rewards.String(),
		Velocity:  velocity,
		Timestamp: res.Result.CurrentTimestamp,
	}
}

func (cs *ClaimsService) estimateFailed(network config.Network, reason string, err error) {
	cs.logger.Sugar().Warnw("Current rewards estimate unavailable",
		zap.String("network", network.String()),
		zap.String("reason", reason),
		zap.Error(err),
	)
	_ = cs.metricsSink.Incr(metricsTypes.Metric_Incr_EstimateFailed, []metricsTypes.MetricsLabel{
		{Name: "network", Value: network.String()},
		{Name: "reason", Value: reason},
	}, 1)
}
