package contractAbi

import (
	"regexp"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"
)

var ignorableAbiErrors = []*regexp.Regexp{
	regexp.MustCompile(`only single receive is allowed`),
	regexp.MustCompile(`only single fallback is allowed`),
}

// UnmarshalJsonToAbi unmarshals a JSON ABI string into an abi.ABI struct.
// Duplicate receive/fallback entries found in some published ABIs are tolerated.
func UnmarshalJsonToAbi(json string, l *zap.Logger) (*abi.ABI, error) {
	a := &abi.ABI{}

	err := a.UnmarshalJSON([]byte(json))
	if err == nil {
		return a, nil
	}

	for _, pattern := range ignorableAbiErrors {
		if pattern.MatchString(err.Error()) {
			return a, nil
		}
	}
	l.Sugar().Warnw("Error unmarshaling abi json", zap.Error(err))
	return nil, err
}

var (
	merkleRedeemOnce sync.Once
	merkleRedeemAbi  *abi.ABI
	merkleRedeemErr  error
)

// GetMerkleRedeemAbi parses MerkleRedeemAbi once and returns the shared result.
func GetMerkleRedeemAbi(l *zap.Logger) (*abi.ABI, error) {
	merkleRedeemOnce.Do(func() {
		merkleRedeemAbi, merkleRedeemErr = UnmarshalJsonToAbi(MerkleRedeemAbi, l)
	})
	return merkleRedeemAbi, merkleRedeemErr
}
