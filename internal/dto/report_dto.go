package dto

import (
	"time"

	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

// StatsResponse carries the headline issuance counters for the dashboard.
type StatsResponse struct {
	IssuesToday   int64     `json:"issues_today"`
	IssuesWeek    int64     `json:"issues_week"`
	QtyIssuedWeek int64     `json:"qty_issued_week"`
	LowStockItems int       `json:"low_stock_items"`
	GeneratedAt   time.Time `json:"generated_at"`
	CacheHit      bool      `json:"cache_hit"`
}

// ReportResponse bundles the windowed reporting aggregates.
type ReportResponse struct {
	WindowDays       int                          `json:"window_days"`
	TopItems         []repository.ItemTotal       `json:"top_items"`
	TeacherTotals    []repository.TeacherTotal    `json:"teacher_totals"`
	DepartmentTotals []repository.DepartmentTotal `json:"department_totals"`
	GeneratedAt      time.Time                    `json:"generated_at"`
	CacheHit         bool                         `json:"cache_hit"`
}

// NewReportResponse assembles a report for the given window.
func NewReportResponse(days int, items []repository.ItemTotal, teachers []repository.TeacherTotal, departments []repository.DepartmentTotal) ReportResponse {
	if items == nil {
		items = []repository.ItemTotal{}
	}
	if teachers == nil {
		teachers = []repository.TeacherTotal{}
	}
	if departments == nil {
		departments = []repository.DepartmentTotal{}
	}
	return ReportResponse{
		WindowDays:       days,
		TopItems:         items,
		TeacherTotals:    teachers,
		DepartmentTotals: departments,
		GeneratedAt:      time.Now().UTC(),
	}
}
