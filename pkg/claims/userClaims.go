package claims

import (
	"context"
	"sort"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"golang.org/x/sync/errgroup"
)

// GetUserClaims fetches pending claims and the current estimate concurrently.
// An unsupported network yields an empty PendingClaims list and a nil PendingClaimsMap.
func (cs *ClaimsService) GetUserClaims(ctx context.Context, network config.Network, account string) (*UserClaims, error) {
	var (
		pendingClaimsMap PendingClaimsMap
		estimate         *CurrentRewardsEstimate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pendingClaimsMap, err = cs.GetPendingClaims(gctx, network, account)
		return err
	})
	g.Go(func() error {
		estimate = cs.GetCurrentRewardsEstimate(gctx, network, account)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &UserClaims{
		PendingClaims:          SortedPendingClaims(pendingClaimsMap),
		PendingClaimsMap:       pendingClaimsMap,
		CurrentRewardsEstimate: estimate,
	}, nil
}

// SortedPendingClaims lists the map values ordered by token label, then token address.
func SortedPendingClaims(m PendingClaimsMap) []*PendingClaims {
	out := make([]*PendingClaims, 0, len(m))
	for _, pending := range m {
		out = append(out, pending)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].TokenClaimInfo, out[j].TokenClaimInfo
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.Token < b.Token
	})
	return out
}
