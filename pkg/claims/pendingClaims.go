package claims

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/internal/tracer"
	"github.com/Layr-Labs/rewards-claimer/internal/types/numbers"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics/metricsTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/utils"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	ddTracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// PendingWeeks returns the 1-based weeks whose claim status is false, in ascending order.
func PendingWeeks(status []bool) []uint64 {
	weeks := make([]uint64, 0, len(status))
	for i, claimed := range status {
		if !claimed {
			weeks = append(weeks, uint64(i+1))
		}
	}
	return weeks
}

// BuildClaims creates a claim for every report holding a non-zero amount for the account.
func BuildClaims(reports *orderedmap.OrderedMap[uint64, Report], account string) ([]*Claim, error) {
	claims := make([]*Claim, 0)
	for pair := reports.Oldest(); pair != nil; pair = pair.Next() {
		amount, ok := pair.Value.AmountFor(account)
		if !ok || amount == "" {
			continue
		}
		denorm, err := numbers.ToWei(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in report for week %d: %w", pair.Key, err)
		}
		if denorm.Sign() == 0 {
			continue
		}
		if denorm.Sign() < 0 {
			return nil, fmt.Errorf("negative amount '%s' in report for week %d", amount, pair.Key)
		}
		claims = append(claims, &Claim{
			Id:           strconv.FormatUint(pair.Key, 10),
			Amount:       amount,
			AmountDenorm: denorm,
		})
	}
	return claims, nil
}

func sumClaims(claims []*Claim) (string, error) {
	amounts := make([]string, 0, len(claims))
	for _, c := range claims {
		amounts = append(amounts, c.Amount)
	}
	return numbers.SumDecimalStrings(amounts)
}

// GetPendingClaims computes the unclaimed rewards of account for every token claimable on the network.
//
// A nil map with a nil error means the network has no token claims configured. Any failure
// aborts the whole computation; no partial map is returned.
func (cs *ClaimsService) GetPendingClaims(ctx context.Context, network config.Network, account string) (result PendingClaimsMap, err error) {
	startTime := time.Now()
	span, ctx := tracer.StartSpan(ctx, "claims.pendingClaims", map[string]interface{}{
		"network": network.String(),
		"account": account,
	})
	defer func() {
		span.Finish(ddTracer.WithError(err))
		_ = cs.metricsSink.Timing(metricsTypes.Metric_Timing_PendingClaimsDuration, time.Since(startTime), []metricsTypes.MetricsLabel{
			{Name: "network", Value: network.String()},
			{Name: "hasError", Value: fmt.Sprintf("%v", err != nil)},
		})
	}()

	tokenClaimsInfo := cs.config.GetTokenClaimsInfo(network)
	if tokenClaimsInfo == nil {
		cs.logger.Sugar().Debugw("No token claims configured for network", zap.String("network", network.String()))
		return nil, nil
	}

	pendingClaimsMap := PendingClaimsMap{}
	for _, tokenClaimInfo := range tokenClaimsInfo {
		if token, ok := utils.ChecksumAddress(tokenClaimInfo.Token); ok {
			tokenClaimInfo.Token = token
		}
		pending, err := cs.getPendingClaimsForToken(ctx, tokenClaimInfo, account)
		if err != nil {
			cs.logger.Sugar().Errorw("Failed to compute pending claims",
				zap.String("network", network.String()),
				zap.String("token", tokenClaimInfo.Label),
				zap.String("account", account),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to compute pending %s claims: %w", tokenClaimInfo.Label, err)
		}
		pendingClaimsMap[tokenClaimInfo.Token] = pending

		_ = cs.metricsSink.Gauge(metricsTypes.Metric_Gauge_PendingWeeks, float64(len(pending.Claims)), []metricsTypes.MetricsLabel{
			{Name: "network", Value: network.String()},
			{Name: "token", Value: tokenClaimInfo.Label},
		})
	}

	_ = cs.metricsSink.Incr(metricsTypes.Metric_Incr_PendingClaimsComputed, []metricsTypes.MetricsLabel{
		{Name: "network", Value: network.String()},
	}, 1)
	cs.publish(eventBusTypes.Event_PendingClaimsComputed, pendingClaimsComputedData(network, account, pendingClaimsMap))

	return pendingClaimsMap, nil
}

func (cs *ClaimsService) getPendingClaimsForToken(ctx context.Context, tokenClaimInfo config.TokenClaimInfo, account string) (*PendingClaims, error) {
	snapshot, err := cs.GetSnapshot(ctx, tokenClaimInfo.Manifest)
	if err != nil {
		return nil, err
	}

	weekCount := uint64(len(snapshot))
	status := []bool{}
	if weekCount > 0 {
		status, err = cs.caller.ClaimStatus(ctx, tokenClaimInfo.Rewarder, account, 1, weekCount)
		if err != nil {
			return nil, err
		}
		if uint64(len(status)) != weekCount {
			return nil, fmt.Errorf("claim status returned %d weeks, snapshot has %d", len(status), weekCount)
		}
	}

	pendingWeeks := PendingWeeks(status)
	cs.logger.Sugar().Debugw("Found unclaimed weeks",
		zap.String("token", tokenClaimInfo.Label),
		zap.Uint64("weeks", weekCount),
		zap.Int("unclaimed", len(pendingWeeks)),
	)

	reports, err := cs.GetReports(ctx, snapshot, pendingWeeks)
	if err != nil {
		return nil, err
	}

	claims, err := BuildClaims(reports, account)
	if err != nil {
		return nil, err
	}
	availableToClaim, err := sumClaims(claims)
	if err != nil {
		return nil, err
	}

	return &PendingClaims{
		Claims:           claims,
		Reports:          reports,
		Snapshot:         snapshot,
		TokenClaimInfo:   tokenClaimInfo,
		AvailableToClaim: availableToClaim,
	}, nil
}

func pendingClaimsComputedData(network config.Network, account string, m PendingClaimsMap) *eventBusTypes.PendingClaimsComputedData {
	data := &eventBusTypes.PendingClaimsComputedData{
		Network:          network.String(),
		Account:          account,
		AvailableToClaim: make(map[string]string, len(m)),
	}
	for token, pending := range m {
		data.AvailableToClaim[token] = pending.AvailableToClaim
		data.Claims += len(pending.Claims)
	}
	return data
}
