// Package claims computes the MerkleRedeem rewards an account can still claim and submits claims for them.
package claims

import (
	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ipfs"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/liquidityMining"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	"github.com/Layr-Labs/rewards-claimer/pkg/proofs"
	"go.uber.org/zap"
)

// ClaimsService reconciles published weekly reports with on-chain claim status,
// and builds and submits claims for the weeks still owed to an account.
type ClaimsService struct {
	// config holds the immutable per-network contract and token claim tables
	config *config.Config
	// documents fetches manifests and reports from IPFS or plain http locations
	documents *ipfs.Ipfs
	// caller reads claim status from the rewarder contracts
	caller contractCaller.IMerkleRedeemCaller
	// proofs builds merkle proofs from week reports
	proofs *proofs.ClaimProofsStore
	// estimates queries the liquidity mining API; may be nil
	estimates *liquidityMining.Client
	// eventBus receives claim lifecycle events; may be nil
	eventBus    eventBusTypes.IEventBus
	metricsSink *metrics.MetricsSink
	logger      *zap.Logger
}

// NewClaimsService wires a ClaimsService. The service holds no per-account state,
// so a single instance can serve concurrent queries for different accounts.
func NewClaimsService(
	cfg *config.Config,
	documents *ipfs.Ipfs,
	caller contractCaller.IMerkleRedeemCaller,
	proofStore *proofs.ClaimProofsStore,
	estimates *liquidityMining.Client,
	eb eventBusTypes.IEventBus,
	ms *metrics.MetricsSink,
	l *zap.Logger,
) *ClaimsService {
	return &ClaimsService{
		config:      cfg,
		documents:   documents,
		caller:      caller,
		proofs:      proofStore,
		estimates:   estimates,
		eventBus:    eb,
		metricsSink: ms,
		logger:      l,
	}
}

func (cs *ClaimsService) publish(name eventBusTypes.EventName, data any) {
	if cs.eventBus == nil {
		return
	}
	cs.eventBus.Publish(eventBusTypes.NewEvent(name, data))
}
