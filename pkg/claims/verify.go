package claims

import (
	"context"

	"github.com/Layr-Labs/rewards-claimer/pkg/proofs"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

type ClaimVerification struct {
	Label    string
	Token    string
	Rewarder string
	Week     uint64
	Amount   string
	Root     common.Hash
	// Local is true when the proof verifies against the root rebuilt from the report
	Local bool
	// OnChain is true when the published week root matches and the rewarder accepts the proof
	OnChain bool
}

// VerifyPendingClaims checks every pending claim's proof locally and against its rewarder contract.
// A rejected proof is reported in the result; only failures to build or query a proof are errors.
func (cs *ClaimsService) VerifyPendingClaims(ctx context.Context, account string, pendingClaims []*PendingClaims) ([]*ClaimVerification, error) {
	claimProofs, err := cs.buildClaimProofs(account, pendingClaims)
	if err != nil {
		return nil, err
	}

	results := make([]*ClaimVerification, 0, len(claimProofs))
	for _, cp := range claimProofs {
		info := cp.pending.TokenClaimInfo
		onChain, err := cs.proofs.VerifyOnChain(ctx, info.Rewarder, cp.proof)
		if err != nil {
			cs.logger.Sugar().Errorw("Failed to verify claim on chain",
				zap.String("token", info.Label),
				zap.Uint64("week", cp.proof.Week),
				zap.Error(err),
			)
			return nil, err
		}
		results = append(results, &ClaimVerification{
			Label:    info.Label,
			Token:    info.Token,
			Rewarder: info.Rewarder,
			Week:     cp.proof.Week,
			Amount:   cp.claim.Amount,
			Root:     cp.proof.Root,
			Local:    proofs.VerifyLocal(cp.proof),
			OnChain:  onChain,
		})
	}
	return results, nil
}
