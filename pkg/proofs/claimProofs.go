package proofs

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/Layr-Labs/rewards-claimer/internal/types/numbers"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller"
	"github.com/Layr-Labs/rewards-claimer/pkg/merkle"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ClaimProofsStore builds merkle proofs for weekly report claims.
// Trees are cached by report location since a published report never changes.
type ClaimProofsStore struct {
	caller contractCaller.IMerkleRedeemCaller
	logger *zap.Logger

	mu    sync.Mutex
	trees map[string]*merkle.MerkleTree
}

// WeekClaimProof is everything needed to claim one week and to check the claim.
type WeekClaimProof struct {
	Week    uint64
	Account string
	Balance *big.Int
	Leaf    []byte
	Root    common.Hash
	Proof   [][32]byte
}

// NewClaimProofsStore creates a store. caller is only needed for on-chain verification and may be nil.
func NewClaimProofsStore(caller contractCaller.IMerkleRedeemCaller, l *zap.Logger) *ClaimProofsStore {
	return &ClaimProofsStore{
		caller: caller,
		logger: l,
		trees:  make(map[string]*merkle.MerkleTree),
	}
}

// getTreeForReport returns the cached tree for location, building it from report on a miss.
// An empty location disables caching.
func (cps *ClaimProofsStore) getTreeForReport(location string, report map[string]string) (*merkle.MerkleTree, error) {
	if location != "" {
		cps.mu.Lock()
		tree, ok := cps.trees[location]
		cps.mu.Unlock()
		if ok {
			return tree, nil
		}
	}

	tree, err := merkle.NewReportTree(report)
	if err != nil {
		cps.logger.Sugar().Errorw("Failed to build merkle tree for report",
			zap.String("location", location),
			zap.Error(err),
		)
		return nil, err
	}

	if location != "" {
		cps.mu.Lock()
		cps.trees[location] = tree
		cps.mu.Unlock()
	}
	return tree, nil
}

// GenerateWeekClaimProof builds the proof that account is owed amount in the given week's report.
func (cps *ClaimProofsStore) GenerateWeekClaimProof(location string, report map[string]string, week uint64, account string, amount string) (*WeekClaimProof, error) {
	balance, err := numbers.ToWei(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid claim amount for week %d: %w", week, err)
	}
	leaf, err := merkle.LeafHash(account, balance)
	if err != nil {
		return nil, err
	}

	tree, err := cps.getTreeForReport(location, report)
	if err != nil {
		return nil, fmt.Errorf("failed to build merkle tree for week %d: %w", week, err)
	}

	proof, err := tree.Proof32(leaf)
	if err != nil {
		cps.logger.Sugar().Errorw("Failed to generate claim proof",
			zap.Uint64("week", week),
			zap.String("account", account),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to generate proof for week %d: %w", week, err)
	}

	return &WeekClaimProof{
		Week:    week,
		Account: account,
		Balance: balance,
		Leaf:    leaf,
		Root:    tree.RootHash(),
		Proof:   proof,
	}, nil
}

// VerifyLocal checks the proof against the root of the tree it was built from.
func VerifyLocal(p *WeekClaimProof) bool {
	proof := make([][]byte, len(p.Proof))
	for i := range p.Proof {
		proof[i] = p.Proof[i][:]
	}
	return merkle.VerifyProof(proof, p.Root.Bytes(), p.Leaf)
}

// VerifyOnChain checks that the locally built root matches the published root for the week
// and that the contract accepts the proof.
func (cps *ClaimProofsStore) VerifyOnChain(ctx context.Context, rewarder string, p *WeekClaimProof) (bool, error) {
	if cps.caller == nil {
		return false, fmt.Errorf("contract caller not available")
	}

	root, err := cps.caller.WeekMerkleRoot(ctx, rewarder, p.Week)
	if err != nil {
		return false, err
	}
	if !bytes.Equal(root[:], p.Root.Bytes()) {
		cps.logger.Sugar().Warnw("Report merkle root does not match the published root",
			zap.Uint64("week", p.Week),
			zap.String("published", common.Hash(root).Hex()),
			zap.String("computed", p.Root.Hex()),
		)
		return false, nil
	}

	return cps.caller.VerifyClaim(ctx, rewarder, p.Account, p.Week, p.Balance, p.Proof)
}
