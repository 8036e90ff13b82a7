package cmd

import (
	"github.com/Layr-Labs/rewards-claimer/pkg/claims"
	"github.com/Layr-Labs/rewards-claimer/pkg/utils"
)

type claimView struct {
	Week         string `json:"week"`
	Amount       string `json:"amount"`
	AmountDenorm string `json:"amountDenorm"`
}

type pendingClaimsView struct {
	Label            string      `json:"label"`
	Token            string      `json:"token"`
	Rewarder         string      `json:"rewarder"`
	AvailableToClaim string      `json:"availableToClaim"`
	Claims           []claimView `json:"claims"`
}

type claimVerificationView struct {
	Label   string `json:"label"`
	Token   string `json:"token"`
	Week    uint64 `json:"week"`
	Amount  string `json:"amount"`
	Root    string `json:"root"`
	Local   bool   `json:"local"`
	OnChain bool   `json:"onChain"`
}

type userClaimsView struct {
	PendingClaims          []pendingClaimsView            `json:"pendingClaims"`
	CurrentRewardsEstimate *claims.CurrentRewardsEstimate `json:"currentRewardsEstimate"`
}

func toPendingClaimsViews(pending []*claims.PendingClaims) []pendingClaimsView {
	return utils.Map(pending, func(p *claims.PendingClaims, i uint64) pendingClaimsView {
		return pendingClaimsView{
			Label:            p.TokenClaimInfo.Label,
			Token:            p.TokenClaimInfo.Token,
			Rewarder:         p.TokenClaimInfo.Rewarder,
			AvailableToClaim: p.AvailableToClaim,
			Claims: utils.Map(p.Claims, func(c *claims.Claim, i uint64) claimView {
				return claimView{
					Week:         c.Id,
					Amount:       c.Amount,
					AmountDenorm: c.AmountDenorm.String(),
				}
			}),
		}
	})
}

func toClaimVerificationViews(results []*claims.ClaimVerification) []claimVerificationView {
	return utils.Map(results, func(r *claims.ClaimVerification, i uint64) claimVerificationView {
		return claimVerificationView{
			Label:   r.Label,
			Token:   r.Token,
			Week:    r.Week,
			Amount:  r.Amount,
			Root:    utils.ConvertBytesToString(r.Root.Bytes()),
			Local:   r.Local,
			OnChain: r.OnChain,
		}
	})
}
