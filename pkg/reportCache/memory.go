package reportCache

import (
	"fmt"

	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

type MemoryReportCache struct {
	lru         *lru.Cache[string, []byte]
	metricsSink *metrics.MetricsSink
	logger      *zap.Logger
}

func NewMemoryReportCache(size int, ms *metrics.MetricsSink, l *zap.Logger) (*MemoryReportCache, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	return &MemoryReportCache{
		lru:         c,
		metricsSink: ms,
		logger:      l,
	}, nil
}

func (c *MemoryReportCache) Get(location string) ([]byte, bool) {
	body, ok := c.lru.Get(location)
	recordLookup(c.metricsSink, ok)
	return body, ok
}

func (c *MemoryReportCache) Set(location string, body []byte) error {
	if evicted := c.lru.Add(location, body); evicted {
		c.logger.Sugar().Debugw("Evicted report from cache", zap.String("location", location))
	}
	return nil
}

func (c *MemoryReportCache) Len() int {
	return c.lru.Len()
}

func (c *MemoryReportCache) Close() error {
	c.lru.Purge()
	return nil
}
