package claims

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func isEmptyDocument(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ParseSnapshot decodes a manifest of week to report location. An empty or null document is an empty snapshot.
func ParseSnapshot(body []byte) (Snapshot, error) {
	snapshot := Snapshot{}
	if isEmptyDocument(body) {
		return snapshot, nil
	}

	raw := map[string]string{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot")
	}
	for key, location := range raw {
		week, err := strconv.ParseUint(key, 10, 64)
		if err != nil || week == 0 {
			return nil, errors.Errorf("invalid week '%s' in snapshot", key)
		}
		snapshot[week] = location
	}
	return snapshot, nil
}

// ParseReport decodes a weekly report. Amounts may be JSON strings or numbers; null entries are dropped.
func ParseReport(body []byte) (Report, error) {
	report := Report{}
	if isEmptyDocument(body) {
		return report, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	raw := map[string]interface{}{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode report")
	}
	for account, value := range raw {
		switch v := value.(type) {
		case string:
			report[account] = v
		case json.Number:
			report[account] = v.String()
		case nil:
			continue
		default:
			return nil, errors.Errorf("unexpected amount type %T for '%s'", value, account)
		}
	}
	return report, nil
}

func (cs *ClaimsService) GetSnapshot(ctx context.Context, manifest string) (Snapshot, error) {
	body, err := cs.documents.GetUncached(ctx, manifest)
	if err != nil {
		cs.logger.Sugar().Errorw("Failed to fetch snapshot manifest",
			zap.String("manifest", manifest),
			zap.Error(err),
		)
		return nil, err
	}
	return ParseSnapshot(body)
}

func (cs *ClaimsService) GetReport(ctx context.Context, location string) (Report, error) {
	body, err := cs.documents.Get(ctx, location)
	if err != nil {
		return nil, err
	}
	return ParseReport(body)
}

// GetReports fetches the reports for weeks concurrently and returns them in the order of weeks.
func (cs *ClaimsService) GetReports(ctx context.Context, snapshot Snapshot, weeks []uint64) (*orderedmap.OrderedMap[uint64, Report], error) {
	for _, week := range weeks {
		if location, ok := snapshot[week]; !ok || location == "" {
			return nil, errors.Wrapf(ErrNoReportLocation, "week %d", week)
		}
	}

	reports := make([]Report, len(weeks))
	g, gctx := errgroup.WithContext(ctx)
	if limit := cs.config.ClaimsConfig.ReportFetchConcurrency; limit > 0 {
		g.SetLimit(limit)
	}
	for i, week := range weeks {
		g.Go(func() error {
			report, err := cs.GetReport(gctx, snapshot[week])
			if err != nil {
				return fmt.Errorf("failed to fetch report for week %d: %w", week, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		cs.logger.Sugar().Errorw("Failed to fetch reports", zap.Error(err))
		return nil, err
	}

	ordered := orderedmap.New[uint64, Report](orderedmap.WithCapacity[uint64, Report](len(weeks)))
	for i, week := range weeks {
		ordered.Set(week, reports[i])
	}
	return ordered, nil
}
