// Package reportCache stores raw report documents keyed by their location.
//
// Reports are immutable once published, so entries never expire; the memory
// cache only evicts to stay within its size.
package reportCache

import (
	"fmt"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics/metricsTypes"
	"go.uber.org/zap"
)

type ReportCache interface {
	Get(location string) ([]byte, bool)
	Set(location string, body []byte) error
	Close() error
}

// NewReportCacheFromConfig returns a LevelDB cache when a directory is configured,
// otherwise an in-memory LRU.
func NewReportCacheFromConfig(cfg *config.ReportCacheConfig, ms *metrics.MetricsSink, l *zap.Logger) (ReportCache, error) {
	if cfg.Dir != "" {
		l.Sugar().Infow("Using on-disk report cache", zap.String("dir", cfg.Dir))
		return NewLevelDbReportCache(cfg.Dir, ms, l)
	}
	size := cfg.Size
	if size <= 0 {
		size = config.DefaultReportCacheSize
	}
	return NewMemoryReportCache(size, ms, l)
}

func recordLookup(ms *metrics.MetricsSink, hit bool) {
	if ms == nil {
		return
	}
	name := metricsTypes.Metric_Incr_ReportCacheMiss
	if hit {
		name = metricsTypes.Metric_Incr_ReportCacheHit
	}
	_ = ms.Incr(name, nil, 1)
}

func cacheKey(location string) []byte {
	return []byte(fmt.Sprintf("report:%s", location))
}
