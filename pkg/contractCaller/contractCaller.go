package contractCaller

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
)

// WeekClaim mirrors the MerkleRedeem.Claim struct passed to claimWeeks.
type WeekClaim struct {
	Week        *big.Int
	Balance     *big.Int
	MerkleProof [][32]byte
}

// IMerkleRedeemCaller defines the MerkleRedeem contract operations used for claiming
type IMerkleRedeemCaller interface {
	// ClaimStatus returns the claimed flag for weeks begin..end (inclusive) of the account
	ClaimStatus(ctx context.Context, rewarder string, account string, begin uint64, end uint64) ([]bool, error)

	// WeekMerkleRoot returns the published merkle root for a week
	WeekMerkleRoot(ctx context.Context, rewarder string, week uint64) ([32]byte, error)

	// VerifyClaim asks the contract whether a proof is valid for the account, week and balance
	VerifyClaim(ctx context.Context, rewarder string, account string, week uint64, balance *big.Int, proof [][32]byte) (bool, error)

	// ClaimWeeks submits a single claimWeeks transaction for all the given claims
	ClaimWeeks(ctx context.Context, opts *bind.TransactOpts, merkleRedeem string, account string, claims []WeekClaim) (*types.Transaction, error)
}
