package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

const (
	statsCacheKey  = "report:stats"
	reportCacheKey = "report:overview"
)

// ReportService serves read-only aggregates over committed issues. Results are
// cached in Redis for a short window since the dashboards poll them.
type ReportService interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
	Overview(ctx context.Context, days int) (dto.ReportResponse, error)
}

type reportService struct {
	reports  repository.ReportRepository
	items    repository.ItemRepository
	redis    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewReportService constructs the reporting read path. A nil Redis client
// disables caching.
func NewReportService(
	reports repository.ReportRepository,
	items repository.ItemRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reports:  reports,
		items:    items,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) Stats(ctx context.Context) (dto.StatsResponse, error) {
	var cached dto.StatsResponse
	if s.readCache(ctx, statsCacheKey, &cached) {
		cached.CacheHit = true
		return cached, nil
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.AddDate(0, 0, -7)

	issuesToday, err := s.reports.CountIssues(ctx, today)
	if err != nil {
		return dto.StatsResponse{}, err
	}
	issuesWeek, err := s.reports.CountIssues(ctx, weekAgo)
	if err != nil {
		return dto.StatsResponse{}, err
	}
	qtyWeek, err := s.reports.SumIssuedQty(ctx, weekAgo)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	lowStock, err := s.lowStockCount(ctx)
	if err != nil {
		return dto.StatsResponse{}, err
	}

	stats := dto.StatsResponse{
		IssuesToday:   issuesToday,
		IssuesWeek:    issuesWeek,
		QtyIssuedWeek: qtyWeek,
		LowStockItems: lowStock,
		GeneratedAt:   now,
	}

	s.writeCache(ctx, statsCacheKey, stats)
	return stats, nil
}

func (s *reportService) Overview(ctx context.Context, days int) (dto.ReportResponse, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	key := reportCacheKey
	var cached dto.ReportResponse
	if days == 30 && s.readCache(ctx, key, &cached) {
		cached.CacheHit = true
		return cached, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -days)

	topItems, err := s.reports.TopItems(ctx, since, 10)
	if err != nil {
		return dto.ReportResponse{}, err
	}
	teacherTotals, err := s.reports.TeacherTotals(ctx, since)
	if err != nil {
		return dto.ReportResponse{}, err
	}
	departmentTotals, err := s.reports.DepartmentTotals(ctx, since)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	report := dto.NewReportResponse(days, topItems, teacherTotals, departmentTotals)

	if days == 30 {
		s.writeCache(ctx, key, report)
	}
	return report, nil
}

func (s *reportService) lowStockCount(ctx context.Context) (int, error) {
	items, err := s.items.List(ctx, true)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		if item.BelowReorderLevel() {
			count++
		}
	}
	return count, nil
}

func (s *reportService) readCache(ctx context.Context, key string, out any) bool {
	if s.redis == nil {
		return false
	}
	raw, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping corrupt report cache entry")
		s.redis.Del(ctx, key)
		return false
	}
	return true
}

func (s *reportService) writeCache(ctx context.Context, key string, value any) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache report")
	}
}
