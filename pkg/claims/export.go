package claims

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

type pendingClaimRow struct {
	Label        string `csv:"label"`
	Token        string `csv:"token"`
	Rewarder     string `csv:"rewarder"`
	Week         uint64 `csv:"week"`
	Amount       string `csv:"amount"`
	AmountDenorm string `csv:"amount_denorm"`
}

// WritePendingClaimsCsv writes one row per pending claim, grouped by token and ordered by week.
func WritePendingClaimsCsv(w io.Writer, m PendingClaimsMap) error {
	rows := make([]*pendingClaimRow, 0)
	for _, pending := range SortedPendingClaims(m) {
		for _, claim := range pending.Claims {
			week, err := strconv.ParseUint(claim.Id, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid week '%s': %w", claim.Id, err)
			}
			denorm := ""
			if claim.AmountDenorm != nil {
				denorm = claim.AmountDenorm.String()
			}
			rows = append(rows, &pendingClaimRow{
				Label:        pending.TokenClaimInfo.Label,
				Token:        pending.TokenClaimInfo.Token,
				Rewarder:     pending.TokenClaimInfo.Rewarder,
				Week:         week,
				Amount:       claim.Amount,
				AmountDenorm: denorm,
			})
		}
	}
	return gocsv.Marshal(rows, w)
}
