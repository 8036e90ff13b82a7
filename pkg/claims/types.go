package claims

import (
	"errors"
	"math/big"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/utils"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	ErrNothingToClaim     = errors.New("nothing to claim")
	ErrNoReportLocation   = errors.New("snapshot has no report location for week")
	ErrUnsupportedNetwork = errors.New("network has no MerkleRedeem deployment")
)

// Snapshot maps a week number to the location of that week's report.
type Snapshot map[uint64]string

// Report maps an account address to the decimal token amount it can claim for one week.
type Report map[string]string

// AmountFor looks up the account by exact key first and then by case-insensitive address.
func (r Report) AmountFor(account string) (string, bool) {
	if amount, ok := r[account]; ok {
		return amount, true
	}
	for addr, amount := range r {
		if utils.AreAddressesEqual(addr, account) {
			return amount, true
		}
	}
	return "", false
}

type Claim struct {
	// Id is the week number
	Id           string
	Amount       string
	AmountDenorm *big.Int
}

type PendingClaims struct {
	Claims []*Claim
	// Reports holds the report of every unclaimed week, in ascending week order
	Reports          *orderedmap.OrderedMap[uint64, Report]
	Snapshot         Snapshot
	TokenClaimInfo   config.TokenClaimInfo
	AvailableToClaim string
}

// PendingClaimsMap is keyed by checksummed token address, whatever case the token is configured in.
type PendingClaimsMap map[string]*PendingClaims

type CurrentRewardsEstimate struct {
	Rewards   string
	Velocity  string
	Timestamp string
}

type UserClaims struct {
	PendingClaims          []*PendingClaims
	PendingClaimsMap       PendingClaimsMap
	CurrentRewardsEstimate *CurrentRewardsEstimate
}
