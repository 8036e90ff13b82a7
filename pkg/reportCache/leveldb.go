package reportCache

import (
	"errors"
	"fmt"

	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap"
)

type LevelDbReportCache struct {
	db          *leveldb.DB
	metricsSink *metrics.MetricsSink
	logger      *zap.Logger
}

func NewLevelDbReportCache(dir string, ms *metrics.MetricsSink, l *zap.Logger) (*LevelDbReportCache, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open report cache at '%s': %w", dir, err)
	}
	return newLevelDbReportCache(db, ms, l), nil
}

// NewInMemoryLevelDbReportCache is backed by leveldb's memory storage and loses its contents on Close.
func NewInMemoryLevelDbReportCache(ms *metrics.MetricsSink, l *zap.Logger) (*LevelDbReportCache, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory report cache: %w", err)
	}
	return newLevelDbReportCache(db, ms, l), nil
}

func newLevelDbReportCache(db *leveldb.DB, ms *metrics.MetricsSink, l *zap.Logger) *LevelDbReportCache {
	return &LevelDbReportCache{
		db:          db,
		metricsSink: ms,
		logger:      l,
	}
}

func (c *LevelDbReportCache) Get(location string) ([]byte, bool) {
	body, err := c.db.Get(cacheKey(location), nil)
	if err != nil {
		if !errors.Is(err, leveldb.ErrNotFound) {
			c.logger.Sugar().Warnw("Failed to read report from cache",
				zap.String("location", location),
				zap.Error(err),
			)
		}
		recordLookup(c.metricsSink, false)
		return nil, false
	}
	recordLookup(c.metricsSink, true)
	return body, true
}

func (c *LevelDbReportCache) Set(location string, body []byte) error {
	if err := c.db.Put(cacheKey(location), body, nil); err != nil {
		return fmt.Errorf("failed to write report '%s' to cache: %w", location, err)
	}
	return nil
}

func (c *LevelDbReportCache) Close() error {
	return c.db.Close()
}
