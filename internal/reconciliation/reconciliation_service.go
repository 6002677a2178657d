package reconciliation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	payrunerrors "github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/payrun/errors"
)

const StatsKeyPrefix = "reconciliation:stats:"

func GetStatsKey(companyID string) string {
	return StatsKeyPrefix + companyID
}

//go:generate mockgen -source=reconciliation_service.go -destination=mock/reconciliation_service_mock.go -package=mock
type Service interface {
	GetStats(ctx context.Context, companyID string, filter GetStatsFilterRequest) (StatsResponse, error)
	InvalidateStats(ctx context.Context, companyID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("reconciliation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconciliation.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetStats melayani dashboard. Hanya query tanpa filter yang di-cache;
// variasi filter langsung ke database karena kombinasinya tidak terbatas.
// Cache stampede ditahan singleflight: satu aggregate per key per saat.
func (s *service) GetStats(
	ctx context.Context,
	companyID string,
	filter GetStatsFilterRequest,
) (StatsResponse, error) {
	aggFilter, err := parseFilter(filter)
	if err != nil {
		return StatsResponse{}, err
	}

	cacheable := filter.PayRunID == "" && filter.PeriodStart == "" && filter.PeriodEnd == ""
	cacheKey := GetStatsKey(companyID)

	if cacheable && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp StatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	if !cacheable {
		stats, err := s.repo.Aggregate(ctx, companyID, aggFilter)
		if err != nil {
			return StatsResponse{}, err
		}
		return mapStatsResponse(companyID, stats), nil
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		stats, err := s.repo.Aggregate(ctx, companyID, aggFilter)
		if err != nil {
			return nil, err
		}

		resp := mapStatsResponse(companyID, stats)

		if s.rdb != nil {
			if jsonData, marshalErr := json.Marshal(resp); marshalErr == nil {
				// TTL pendek: event invalidation adalah jalur utama,
				// TTL cuma jaring pengaman kalau consumer mati.
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}

	return v.(StatsResponse), nil
}

func (s *service) InvalidateStats(ctx context.Context, companyID string) error {
	if s.rdb == nil {
		return nil
	}

	cacheKey := GetStatsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate reconciliation stats cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
		return err
	}
	return nil
}

func parseFilter(filter GetStatsFilterRequest) (AggregateFilter, error) {
	agg := AggregateFilter{PayRunID: filter.PayRunID}

	if filter.PeriodStart != "" {
		t, err := time.Parse("2006-01-02", filter.PeriodStart)
		if err != nil {
			return AggregateFilter{}, payrunerrors.ErrInvalidDateFormat
		}
		agg.PeriodStart = &t
	}
	if filter.PeriodEnd != "" {
		t, err := time.Parse("2006-01-02", filter.PeriodEnd)
		if err != nil {
			return AggregateFilter{}, payrunerrors.ErrInvalidDateFormat
		}
		agg.PeriodEnd = &t
	}
	if agg.PeriodStart != nil && agg.PeriodEnd != nil && !agg.PeriodStart.Before(*agg.PeriodEnd) {
		return AggregateFilter{}, payrunerrors.ErrInvalidPeriod
	}

	return agg, nil
}

func mapStatsResponse(companyID string, stats Stats) StatsResponse {
	return StatsResponse{
		CompanyID:          companyID,
		TotalPaid:          stats.TotalPaid,
		TotalPending:       stats.TotalPending,
		PaymentsThisMonth:  stats.PaymentsThisMonth,
		PayslipCount:       stats.PayslipCount,
		UnpaidCount:        stats.UnpaidCount,
		PartiallyPaidCount: stats.PartiallyPaidCount,
		PaidCount:          stats.PaidCount,
	}
}
