package claims

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/internal/tracer"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller/merkleRedeemCaller"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics/metricsTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/proofs"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	ddTracer "gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

type pendingClaimProof struct {
	pending *PendingClaims
	claim   *Claim
	proof   *proofs.WeekClaimProof
}

// buildClaimProofs generates a proof for every pending claim, flattened across tokens in input order.
func (cs *ClaimsService) buildClaimProofs(account string, pendingClaims []*PendingClaims) ([]*pendingClaimProof, error) {
	out := make([]*pendingClaimProof, 0)
	for _, pending := range pendingClaims {
		if pending == nil {
			continue
		}
		for _, claim := range pending.Claims {
			week, err := strconv.ParseUint(claim.Id, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid week '%s' for %s: %w", claim.Id, pending.TokenClaimInfo.Label, err)
			}
			if pending.Reports == nil {
				return nil, fmt.Errorf("no reports for %s", pending.TokenClaimInfo.Label)
			}
			report, ok := pending.Reports.Get(week)
			if !ok {
				return nil, fmt.Errorf("no report for week %d of %s", week, pending.TokenClaimInfo.Label)
			}

			proof, err := cs.proofs.GenerateWeekClaimProof(pending.Snapshot[week], report, week, account, claim.Amount)
			if err != nil {
				return nil, fmt.Errorf("failed to build %s claim: %w", pending.TokenClaimInfo.Label, err)
			}
			out = append(out, &pendingClaimProof{pending: pending, claim: claim, proof: proof})
		}
	}
	return out, nil
}

// BuildWeekClaims turns every pending claim into a claimWeeks tuple with its merkle proof,
// flattened across tokens in input order.
func (cs *ClaimsService) BuildWeekClaims(account string, pendingClaims []*PendingClaims) ([]contractCaller.WeekClaim, error) {
	claimProofs, err := cs.buildClaimProofs(account, pendingClaims)
	if err != nil {
		return nil, err
	}
	weekClaims := make([]contractCaller.WeekClaim, 0, len(claimProofs))
	for _, cp := range claimProofs {
		weekClaims = append(weekClaims, contractCaller.WeekClaim{
			Week:        new(big.Int).SetUint64(cp.proof.Week),
			Balance:     cp.proof.Balance,
			MerkleProof: cp.proof.Proof,
		})
	}
	return weekClaims, nil
}

// ClaimRewards submits one claimWeeks transaction for all pending claims to the network's MerkleRedeem contract.
// backend and opts come from the wallet that signs for account.
func (cs *ClaimsService) ClaimRewards(
	ctx context.Context,
	network config.Network,
	backend bind.ContractBackend,
	opts *bind.TransactOpts,
	account string,
	pendingClaims []*PendingClaims,
) (tx *types.Transaction, err error) {
	span, ctx := tracer.StartSpan(ctx, "claims.claimRewards", map[string]interface{}{
		"network": network.String(),
		"account": account,
	})
	defer func() {
		span.Finish(ddTracer.WithError(err))
	}()

	contracts := cs.config.GetContractsMapForNetwork(network)
	if contracts == nil || contracts.MerkleRedeem == "" {
		return nil, cs.claimFailed(network, account, fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network.String()))
	}

	weekClaims, err := cs.BuildWeekClaims(account, pendingClaims)
	if err != nil {
		return nil, cs.claimFailed(network, account, err)
	}
	if len(weekClaims) == 0 {
		return nil, cs.claimFailed(network, account, ErrNothingToClaim)
	}

	caller := merkleRedeemCaller.NewMerkleRedeemCallerWithBackend(backend, cs.logger)
	tx, err = caller.ClaimWeeks(ctx, opts, contracts.MerkleRedeem, account, weekClaims)
	if err != nil {
		return nil, cs.claimFailed(network, account, err)
	}

	weeks := make([]uint64, 0, len(weekClaims))
	for _, wc := range weekClaims {
		weeks = append(weeks, wc.Week.Uint64())
	}
	cs.logger.Sugar().Infow("Submitted claim",
		zap.String("network", network.String()),
		zap.String("account", account),
		zap.String("txHash", tx.Hash().Hex()),
		zap.Int("weeks", len(weeks)),
	)
	_ = cs.metricsSink.Incr(metricsTypes.Metric_Incr_ClaimSubmitted, []metricsTypes.MetricsLabel{
		{Name: "network", Value: network.String()},
	}, 1)
	cs.publish(eventBusTypes.Event_ClaimSubmitted, &eventBusTypes.ClaimSubmittedData{
		Network:         network.String(),
		Account:         account,
		TransactionHash: tx.Hash().Hex(),
		Weeks:           weeks,
	})
	return tx, nil
}

func (cs *ClaimsService) claimFailed(network config.Network, account string, err error) error {
	cs.logger.Sugar().Errorw("Claim rewards failed",
		zap.String("network", network.String()),
		zap.String("account", account),
		zap.Error(err),
	)
	_ = cs.metricsSink.Incr(metricsTypes.Metric_Incr_ClaimSubmitFailed, []metricsTypes.MetricsLabel{
		{Name: "network", Value: network.String()},
	}, 1)
	cs.publish(eventBusTypes.Event_ClaimFailed, &eventBusTypes.ClaimFailedData{
		Network: network.String(),
		Account: account,
		Error:   err,
	})
	return err
}
