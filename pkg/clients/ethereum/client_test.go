package ethereum

import (
	"context"
	"net/http"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/logger"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

const testRpcUrl = "http://localhost:8545"

func setup(t *testing.T, chainIdResult string) *Client {
	l, err := logger.NewLogger(&logger.LoggerConfig{
		Debug: false,
	})
	assert.Nil(t, err)

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder("POST", testRpcUrl,
		httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"result":"`+chainIdResult+`"}`))

	client := NewClient(&EthereumClientConfig{
		BaseUrl: testRpcUrl,
	}, l)
	client.SetHttpClient(&http.Client{
		Transport: httpmock.DefaultTransport,
	})
	return client
}

func Test_EthereumClient(t *testing.T) {
	t.Run("eth_chainId", func(t *testing.T) {
		client := setup(t, "0x89")

		chainId, err := client.ChainId(context.Background())
		assert.Nil(t, err)
		assert.Equal(t, uint64(137), chainId.Uint64())
	})
	t.Run("Should accept a matching network", func(t *testing.T) {
		client := setup(t, "0x1")
		assert.Nil(t, client.EnsureNetwork(context.Background(), config.Network_Mainnet))
	})
	t.Run("Should reject a mismatched network", func(t *testing.T) {
		client := setup(t, "0x2a")
		assert.NotNil(t, client.EnsureNetwork(context.Background(), config.Network_Mainnet))
	})
	t.Run("Should error without an rpc url", func(t *testing.T) {
		l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
		client := NewClient(DefaultEthereumClientConfig(), l)
		_, err := client.GetEthereumContractCaller()
		assert.NotNil(t, err)
	})
}
