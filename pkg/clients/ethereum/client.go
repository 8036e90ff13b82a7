package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

type EthereumClientConfig struct {
	BaseUrl string
}

func DefaultEthereumClientConfig() *EthereumClientConfig {
	return &EthereumClientConfig{}
}

func ConvertGlobalConfigToEthereumConfig(cfg *config.EthereumRpcConfig) *EthereumClientConfig {
	return &EthereumClientConfig{
		BaseUrl: cfg.RpcUrl,
	}
}

func DefaultHttpClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

type Client struct {
	httpClient   *http.Client
	clientConfig *EthereumClientConfig
	Logger       *zap.Logger

	mu        sync.Mutex
	ethClient *ethclient.Client
}

func NewClient(cfg *EthereumClientConfig, l *zap.Logger) *Client {
	l.Sugar().Debugw("Creating new Ethereum client", zap.String("baseUrl", cfg.BaseUrl))

	return &Client{
		httpClient:   DefaultHttpClient(),
		clientConfig: cfg,
		Logger:       l,
	}
}

// SetHttpClient replaces the transport used for every subsequent rpc call.
func (c *Client) SetHttpClient(client *http.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.httpClient = client
	if c.ethClient != nil {
		c.ethClient.Close()
		c.ethClient = nil
	}
}

// GetEthereumContractCaller returns an ethclient bound to the configured rpc url.
// The returned client satisfies bind.ContractBackend.
func (c *Client) GetEthereumContractCaller() (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ethClient != nil {
		return c.ethClient, nil
	}
	if c.clientConfig.BaseUrl == "" {
		return nil, fmt.Errorf("ethereum rpc url is not configured")
	}

	rpcClient, err := rpc.DialOptions(context.Background(), c.clientConfig.BaseUrl, rpc.WithHTTPClient(c.httpClient))
	if err != nil {
		c.Logger.Sugar().Errorw("Failed to dial ethereum rpc", zap.Error(err))
		return nil, fmt.Errorf("failed to dial ethereum rpc: %w", err)
	}
	c.ethClient = ethclient.NewClient(rpcClient)
	return c.ethClient, nil
}

func (c *Client) ChainId(ctx context.Context) (*big.Int, error) {
	ec, err := c.GetEthereumContractCaller()
	if err != nil {
		return nil, err
	}
	chainId, err := ec.ChainID(ctx)
	if err != nil {
		c.Logger.Sugar().Errorw("Failed to get chain id", zap.Error(err))
		return nil, err
	}
	return chainId, nil
}

// EnsureNetwork errors when the rpc endpoint serves a different chain than the configured network.
func (c *Client) EnsureNetwork(ctx context.Context, network config.Network) error {
	chainId, err := c.ChainId(ctx)
	if err != nil {
		return err
	}
	if chainId.Uint64() != uint64(network) {
		return fmt.Errorf("rpc endpoint serves chain %s, expected %s (%d)", chainId.String(), network.String(), uint64(network))
	}
	return nil
}
