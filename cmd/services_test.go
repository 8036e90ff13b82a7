package cmd

import (
	"context"
	"net/http"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ethereum"
	"github.com/Layr-Labs/rewards-claimer/pkg/logger"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

const testRpcUrl = "http://localhost:8545"

func setupClaimer(t *testing.T, network config.Network, chainIdResult string) *claimer {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	assert.Nil(t, err)

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder("POST", testRpcUrl,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"`+chainIdResult+`"}`))

	client := ethereum.NewClient(&ethereum.EthereumClientConfig{BaseUrl: testRpcUrl}, l)
	client.SetHttpClient(&http.Client{Transport: httpmock.DefaultTransport})

	return &claimer{
		config: &config.Config{Network: network},
		logger: l,
		client: client,
	}
}

func Test_EnsureNetwork(t *testing.T) {
	t.Run("Should accept an rpc endpoint serving the configured network", func(t *testing.T) {
		c := setupClaimer(t, config.Network_Polygon, "0x89")
		assert.Nil(t, c.ensureNetwork(context.Background()))
	})
	t.Run("Should reject an rpc endpoint serving another chain", func(t *testing.T) {
		c := setupClaimer(t, config.Network_Polygon, "0x1")
		err := c.ensureNetwork(context.Background())
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "expected polygon")
	})
}
