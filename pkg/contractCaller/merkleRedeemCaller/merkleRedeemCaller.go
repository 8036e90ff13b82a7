package merkleRedeemCaller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ethereum"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractAbi"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

type MerkleRedeemCaller struct {
	getBackend func() (bind.ContractBackend, error)
	Logger     *zap.Logger
}

var _ contractCaller.IMerkleRedeemCaller = (*MerkleRedeemCaller)(nil)

func NewMerkleRedeemCaller(ec *ethereum.Client, l *zap.Logger) *MerkleRedeemCaller {
	return &MerkleRedeemCaller{
		getBackend: func() (bind.ContractBackend, error) {
			if ec == nil {
				return nil, fmt.Errorf("ethereum client not available")
			}
			return ec.GetEthereumContractCaller()
		},
		Logger: l,
	}
}

// NewMerkleRedeemCallerWithBackend binds calls to an externally provided backend, such as a wallet provider.
func NewMerkleRedeemCallerWithBackend(backend bind.ContractBackend, l *zap.Logger) *MerkleRedeemCaller {
	return &MerkleRedeemCaller{
		getBackend: func() (bind.ContractBackend, error) {
			if backend == nil {
				return nil, fmt.Errorf("contract backend not available")
			}
			return backend, nil
		},
		Logger: l,
	}
}

func (mrc *MerkleRedeemCaller) bindContract(address string) (*bind.BoundContract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid contract address '%s'", address)
	}
	parsedAbi, err := contractAbi.GetMerkleRedeemAbi(mrc.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MerkleRedeem ABI: %w", err)
	}
	backend, err := mrc.getBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to get contract backend: %w", err)
	}
	return bind.NewBoundContract(common.HexToAddress(address), *parsedAbi, backend, backend, backend), nil
}

func (mrc *MerkleRedeemCaller) call(ctx context.Context, address string, method string, args ...interface{}) (interface{}, error) {
	contract, err := mrc.bindContract(address)
	if err != nil {
		return nil, err
	}

	var result []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &result, method, args...); err != nil {
		mrc.Logger.Sugar().Errorw("MerkleRedeem call failed",
			zap.String("contract", address),
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to call %s on %s: %w", method, address, err)
	}
	if len(result) == 0 || result[0] == nil {
		return nil, fmt.Errorf("got nil or empty result from %s on %s", method, address)
	}
	return result[0], nil
}

func (mrc *MerkleRedeemCaller) ClaimStatus(ctx context.Context, rewarder string, account string, begin uint64, end uint64) ([]bool, error) {
	res, err := mrc.call(ctx, rewarder, contractAbi.MerkleRedeemMethod_ClaimStatus,
		common.HexToAddress(account),
		new(big.Int).SetUint64(begin),
		new(big.Int).SetUint64(end),
	)
	if err != nil {
		return nil, err
	}
	status, ok := res.([]bool)
	if !ok {
		return nil, fmt.Errorf("got unexpected result type %T from claimStatus", res)
	}
	return status, nil
}

func (mrc *MerkleRedeemCaller) WeekMerkleRoot(ctx context.Context, rewarder string, week uint64) ([32]byte, error) {
	res, err := mrc.call(ctx, rewarder, contractAbi.MerkleRedeemMethod_WeekMerkleRoots, new(big.Int).SetUint64(week))
	if err != nil {
		return [32]byte{}, err
	}
	root, ok := res.([32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("got unexpected result type %T from weekMerkleRoots", res)
	}
	return root, nil
}

func (mrc *MerkleRedeemCaller) VerifyClaim(ctx context.Context, rewarder string, account string, week uint64, balance *big.Int, proof [][32]byte) (bool, error) {
	res, err := mrc.call(ctx, rewarder, contractAbi.MerkleRedeemMethod_VerifyClaim,
		common.HexToAddress(account),
		new(big.Int).SetUint64(week),
		balance,
		proof,
	)
	if err != nil {
		return false, err
	}
	valid, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("got unexpected result type %T from verifyClaim", res)
	}
	return valid, nil
}

func (mrc *MerkleRedeemCaller) ClaimWeeks(ctx context.Context, opts *bind.TransactOpts, merkleRedeem string, account string, claims []contractCaller.WeekClaim) (*types.Transaction, error) {
	if opts == nil {
		return nil, fmt.Errorf("transact opts are required")
	}
	contract, err := mrc.bindContract(merkleRedeem)
	if err != nil {
		return nil, err
	}

	txOpts := *opts
	if txOpts.Context == nil {
		txOpts.Context = ctx
	}

	mrc.Logger.Sugar().Debugw("Submitting claimWeeks",
		zap.String("contract", merkleRedeem),
		zap.String("account", account),
		zap.Int("claims", len(claims)),
	)
	tx, err := contract.Transact(&txOpts, contractAbi.MerkleRedeemMethod_ClaimWeeks, common.HexToAddress(account), claims)
	if err != nil {
		return nil, fmt.Errorf("failed to submit claimWeeks to %s: %w", merkleRedeem, err)
	}
	return tx, nil
}
