package liquidityMining

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// LiquidityProvider is one account's accruing estimate for one token on one chain.
type LiquidityProvider struct {
	SnapshotTimestamp string `json:"snapshot_timestamp"`
	Address           string `json:"address"`
	TokenAddress      string `json:"token_address"`
	ChainId           uint64 `json:"chain_id"`
	CurrentEstimate   string `json:"current_estimate"`
	Velocity          string `json:"velocity"`
	Week              uint64 `json:"week"`
}

type LiquidityProviderMultitokenResult struct {
	CurrentTimestamp   string              `json:"current_timestamp"`
	LiquidityProviders []LiquidityProvider `json:"liquidity-providers"`
}

type LiquidityProviderMultitokenResponse struct {
	Success bool                              `json:"success"`
	Result  LiquidityProviderMultitokenResult `json:"result"`
}

func DefaultHttpClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a client for the liquidity mining API rooted at baseURL.
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// GetLiquidityProviderMultitoken fetches the current reward estimates of an account across all tokens and chains
func (c *Client) GetLiquidityProviderMultitoken(ctx context.Context, account string) (*LiquidityProviderMultitokenResponse, error) {
	url := fmt.Sprintf("%s/liquidity-mining/v1/liquidity-provider-multitoken/%s", c.baseURL, account)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	c.logger.Sugar().Debugw("Making liquidity mining request",
		zap.String("url", req.URL.String()),
		zap.String("account", account),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var data LiquidityProviderMultitokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &data, nil
}
