package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

const statsSchema = `{
	"type": "object",
	"required": ["issues_today", "issues_week", "qty_issued_week", "low_stock_items", "generated_at", "cache_hit"],
	"properties": {
		"issues_today": {"type": "integer", "minimum": 0},
		"issues_week": {"type": "integer", "minimum": 0},
		"qty_issued_week": {"type": "integer", "minimum": 0},
		"low_stock_items": {"type": "integer", "minimum": 0},
		"generated_at": {"type": "string"},
		"cache_hit": {"type": "boolean"}
	}
}`

func seedIssuedStock(t *testing.T, db *gorm.DB, teacher models.Teacher, item models.Item, qty int) {
	t.Helper()

	issue := models.Issue{TeacherID: teacher.ID, UserID: 1, SignaturePath: "signatures/test.png"}
	require.NoError(t, db.Create(&issue).Error)
	require.NoError(t, db.Create(&models.IssueLine{IssueID: issue.ID, ItemID: item.ID, Qty: qty}).Error)
}

func newTestReportService(t *testing.T, db *gorm.DB, rdb *redis.Client) ReportService {
	t.Helper()

	return NewReportService(
		repository.NewReportRepository(db),
		repository.NewItemRepository(db),
		rdb,
		time.Minute,
		zerolog.Nop(),
	)
}

func TestReportStatsCaching(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	db := openTestDB(t, "report_stats")
	teacher := createTestTeacher(t, db, "Hana")
	item := createTestItem(t, db, "markers", 1)
	seedIssuedStock(t, db, teacher, item, 3)

	svc := newTestReportService(t, db, redisClient)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.False(t, stats.CacheHit)
	require.Equal(t, int64(1), stats.IssuesToday)
	require.Equal(t, int64(1), stats.IssuesWeek)
	require.Equal(t, int64(3), stats.QtyIssuedWeek)
	require.Equal(t, 1, stats.LowStockItems)

	// A second call within the TTL is served from the cache.
	seedIssuedStock(t, db, teacher, item, 2)
	cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.True(t, cached.CacheHit)
	require.Equal(t, int64(1), cached.IssuesToday)

	server.FastForward(2 * time.Minute)
	fresh, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.False(t, fresh.CacheHit)
	require.Equal(t, int64(2), fresh.IssuesToday)
}

func TestReportStatsPayloadSchema(t *testing.T) {
	db := openTestDB(t, "report_schema")
	svc := newTestReportService(t, db, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	payload, err := json.Marshal(stats)
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("stats.json", strings.NewReader(statsSchema)))
	schema, err := compiler.Compile("stats.json")
	require.NoError(t, err)

	var document any
	require.NoError(t, json.Unmarshal(payload, &document))
	require.NoError(t, schema.Validate(document))
}

func TestReportOverviewAggregates(t *testing.T) {
	db := openTestDB(t, "report_overview")
	teacherA := createTestTeacher(t, db, "Ivy")
	teacherB := createTestTeacher(t, db, "Joel")
	markers := createTestItem(t, db, "markers", 50)
	paper := createTestItem(t, db, "paper", 50)

	seedIssuedStock(t, db, teacherA, markers, 10)
	seedIssuedStock(t, db, teacherA, paper, 2)
	seedIssuedStock(t, db, teacherB, markers, 5)

	svc := newTestReportService(t, db, nil)

	report, err := svc.Overview(context.Background(), 30)
	require.NoError(t, err)
	require.Equal(t, 30, report.WindowDays)
	require.False(t, report.CacheHit)

	require.NotEmpty(t, report.TopItems)
	require.Equal(t, "markers", report.TopItems[0].Name)
	require.Equal(t, int64(15), report.TopItems[0].TotalQty)

	require.Len(t, report.TeacherTotals, 2)
	require.Equal(t, "Ivy", report.TeacherTotals[0].Name)
	require.Equal(t, int64(2), report.TeacherTotals[0].IssueCount)
	require.Equal(t, int64(12), report.TeacherTotals[0].ItemCount)

	require.Len(t, report.DepartmentTotals, 2)
}
