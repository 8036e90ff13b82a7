package claims

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

func Test_GetUserClaims(t *testing.T) {
	t.Run("Should combine pending claims and the estimate", func(t *testing.T) {
		h := setup(t)
		httpmock.RegisterResponder("GET", balManifest,
			httpmock.NewStringResponder(200, `{"1":"`+reportsUrl+`/bal1"}`))
		httpmock.RegisterResponder("GET", reportsUrl+"/bal1", httpmock.NewStringResponder(200, `{"0xAbc":"1"}`))
		httpmock.RegisterResponder("GET", ldoManifest,
			httpmock.NewStringResponder(200, `{"1":"`+reportsUrl+`/ldo1"}`))
		httpmock.RegisterResponder("GET", reportsUrl+"/ldo1", httpmock.NewStringResponder(200, `{"0xAbc":"2"}`))
		httpmock.RegisterResponder("GET", estimateUrl+"/liquidity-mining/v1/liquidity-provider-multitoken/0xAbc",
			httpmock.NewStringResponder(200, `{"success": false}`))
		h.caller.status[balRewarder] = []bool{false}
		h.caller.status[ldoRewarder] = []bool{false}

		uc, err := h.service.GetUserClaims(context.Background(), config.Network_Polygon, "0xAbc")
		assert.Nil(t, err)
		assert.Nil(t, uc.CurrentRewardsEstimate)
		assert.Len(t, uc.PendingClaimsMap, 2)
		assert.Len(t, uc.PendingClaims, 2)
		assert.Equal(t, "BAL", uc.PendingClaims[0].TokenClaimInfo.Label)
		assert.Equal(t, "LDO", uc.PendingClaims[1].TokenClaimInfo.Label)
	})
	t.Run("Should return an empty list for an unsupported network", func(t *testing.T) {
		h := setup(t)
		uc, err := h.service.GetUserClaims(context.Background(), config.Network_Kovan, "0xAbc")
		assert.Nil(t, err)
		assert.Nil(t, uc.PendingClaimsMap)
		assert.NotNil(t, uc.PendingClaims)
		assert.Len(t, uc.PendingClaims, 0)
	})
	t.Run("Should return the reconciliation error", func(t *testing.T) {
		h := setup(t)
		httpmock.RegisterResponder("GET", balManifest, httpmock.NewStringResponder(500, `boom`))
		httpmock.RegisterResponder("GET", estimateUrl+"/liquidity-mining/v1/liquidity-provider-multitoken/0xAbc",
			httpmock.NewStringResponder(200, `{"success": false}`))

		uc, err := h.service.GetUserClaims(context.Background(), config.Network_Mainnet, "0xAbc")
		assert.NotNil(t, err)
		assert.Nil(t, uc)
	})
}

func Test_WritePendingClaimsCsv(t *testing.T) {
	m := PendingClaimsMap{
		ldoToken: {
			TokenClaimInfo: config.TokenClaimInfo{Label: "LDO", Token: ldoToken, Rewarder: ldoRewarder},
			Claims: []*Claim{
				{Id: "4", Amount: "2", AmountDenorm: big.NewInt(2_000_000_000_000_000_000)},
			},
		},
		balToken: {
			TokenClaimInfo: config.TokenClaimInfo{Label: "BAL", Token: balToken, Rewarder: balRewarder},
			Claims: []*Claim{
				{Id: "1", Amount: "0.5", AmountDenorm: big.NewInt(500_000_000_000_000_000)},
				{Id: "3", Amount: "1", AmountDenorm: big.NewInt(1_000_000_000_000_000_000)},
			},
		},
	}

	var buf bytes.Buffer
	assert.Nil(t, WritePendingClaimsCsv(&buf, m))

	expected := "label,token,rewarder,week,amount,amount_denorm\n" +
		"BAL," + balToken + "," + balRewarder + ",1,0.5,500000000000000000\n" +
		"BAL," + balToken + "," + balRewarder + ",3,1,1000000000000000000\n" +
		"LDO," + ldoToken + "," + ldoRewarder + ",4,2,2000000000000000000\n"
	assert.Equal(t, expected, buf.String())
}
