package ipfs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics/metricsTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/reportCache"
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrInvalidReportLocation = errors.New("invalid report location")

const (
	cidV0Length     = 34
	sha256Multihash = 0x12
	sha256Length    = 0x20
)

type Ipfs struct {
	httpClient  *http.Client
	gateway     string
	cache       reportCache.ReportCache
	metricsSink *metrics.MetricsSink
	logger      *zap.Logger
}

func DefaultHttpClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
	}
}

// NewIpfs creates a document client. cache may be nil to disable caching.
func NewIpfs(httpClient *http.Client, gateway string, cache reportCache.ReportCache, ms *metrics.MetricsSink, l *zap.Logger) *Ipfs {
	return &Ipfs{
		httpClient:  httpClient,
		gateway:     strings.TrimRight(gateway, "/"),
		cache:       cache,
		metricsSink: ms,
		logger:      l,
	}
}

// IsIpfsHash reports whether s is a CIDv0 hash: a base58 sha2-256 multihash.
func IsIpfsHash(s string) bool {
	if !strings.HasPrefix(s, "Qm") {
		return false
	}
	decoded := base58.Decode(s)
	return len(decoded) == cidV0Length && decoded[0] == sha256Multihash && decoded[1] == sha256Length
}

// ResolveUrl maps a report location to a fetchable url.
func (i *Ipfs) ResolveUrl(location string) (string, error) {
	location = strings.TrimSpace(location)
	switch {
	case IsIpfsHash(location):
		return fmt.Sprintf("%s/ipfs/%s", i.gateway, location), nil
	case strings.HasPrefix(location, "ipfs://") && IsIpfsHash(strings.TrimPrefix(location, "ipfs://")):
		return fmt.Sprintf("%s/ipfs/%s", i.gateway, strings.TrimPrefix(location, "ipfs://")), nil
	case strings.HasPrefix(location, "https://"), strings.HasPrefix(location, "http://"):
		return location, nil
	}
	return "", errors.Wrapf(ErrInvalidReportLocation, "'%s'", location)
}

// Get returns the document at an immutable location, serving it from the cache when present.
func (i *Ipfs) Get(ctx context.Context, location string) ([]byte, error) {
	if i.cache != nil {
		if body, ok := i.cache.Get(location); ok {
			return body, nil
		}
	}

	url, err := i.ResolveUrl(location)
	if err != nil {
		return nil, err
	}
	body, err := i.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	_ = i.metricsSink.Incr(metricsTypes.Metric_Incr_ReportFetched, nil, 1)

	if i.cache != nil {
		if err := i.cache.Set(location, body); err != nil {
			i.logger.Sugar().Warnw("Failed to cache report", zap.String("location", location), zap.Error(err))
		}
	}
	return body, nil
}

// GetUncached fetches a mutable document such as a manifest.
func (i *Ipfs) GetUncached(ctx context.Context, location string) ([]byte, error) {
	url, err := i.ResolveUrl(location)
	if err != nil {
		return nil, err
	}
	return i.fetch(ctx, url)
}

func (i *Ipfs) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("accept", "application/json")

	i.logger.Sugar().Debugw("Fetching document", zap.String("url", url))

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch '%s'", url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("request to '%s' failed with status %d", url, resp.StatusCode)
	}
	return body, nil
}
