package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// ItemTotal aggregates issued quantity per item.
type ItemTotal struct {
	Name     string `json:"name"`
	TotalQty int64  `json:"total_qty"`
}

// TeacherTotal aggregates issues and issued quantity per teacher.
type TeacherTotal struct {
	Name       string `json:"name"`
	IssueCount int64  `json:"issue_count"`
	ItemCount  int64  `json:"item_count"`
}

// DepartmentTotal aggregates issued quantity per department.
type DepartmentTotal struct {
	Name      string `json:"name"`
	ItemCount int64  `json:"item_count"`
}

// ReportRepository runs the read-only reporting aggregates. Reports never take
// part in the write invariants; they only sum persisted issue data. A zero
// `since` drops the time filter.
type ReportRepository interface {
	CountIssues(ctx context.Context, since time.Time) (int64, error)
	SumIssuedQty(ctx context.Context, since time.Time) (int64, error)
	TopItems(ctx context.Context, since time.Time, limit int) ([]ItemTotal, error)
	TeacherTotals(ctx context.Context, since time.Time) ([]TeacherTotal, error)
	DepartmentTotals(ctx context.Context, since time.Time) ([]DepartmentTotal, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountIssues(ctx context.Context, since time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Issue{})
	if !since.IsZero() {
		query = query.Where("issues.created_at >= ?", since)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reportRepository) SumIssuedQty(ctx context.Context, since time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.IssueLine{}).
		Select("SUM(issue_lines.qty)")
	if !since.IsZero() {
		query = query.
			Joins("JOIN issues ON issues.id = issue_lines.issue_id").
			Where("issues.created_at >= ?", since)
	}

	var sum *int64
	if err := query.Scan(&sum).Error; err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *reportRepository) TopItems(ctx context.Context, since time.Time, limit int) ([]ItemTotal, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	query := r.db.WithContext(ctx).
		Model(&models.IssueLine{}).
		Select("items.name AS name, SUM(issue_lines.qty) AS total_qty").
		Joins("JOIN items ON items.id = issue_lines.item_id").
		Joins("JOIN issues ON issues.id = issue_lines.issue_id")
	if !since.IsZero() {
		query = query.Where("issues.created_at >= ?", since)
	}

	var totals []ItemTotal
	if err := query.
		Group("items.id, items.name").
		Order("total_qty DESC").
		Limit(limit).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *reportRepository) TeacherTotals(ctx context.Context, since time.Time) ([]TeacherTotal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Issue{}).
		Select("teachers.name AS name, COUNT(DISTINCT issues.id) AS issue_count, SUM(issue_lines.qty) AS item_count").
		Joins("JOIN teachers ON teachers.id = issues.teacher_id").
		Joins("JOIN issue_lines ON issue_lines.issue_id = issues.id")
	if !since.IsZero() {
		query = query.Where("issues.created_at >= ?", since)
	}

	var totals []TeacherTotal
	if err := query.
		Group("teachers.id, teachers.name").
		Order("item_count DESC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *reportRepository) DepartmentTotals(ctx context.Context, since time.Time) ([]DepartmentTotal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Issue{}).
		Select("departments.name AS name, SUM(issue_lines.qty) AS item_count").
		Joins("JOIN teachers ON teachers.id = issues.teacher_id").
		Joins("JOIN departments ON departments.id = teachers.department_id").
		Joins("JOIN issue_lines ON issue_lines.issue_id = issues.id")
	if !since.IsZero() {
		query = query.Where("issues.created_at >= ?", since)
	}

	var totals []DepartmentTotal
	if err := query.
		Group("departments.id, departments.name").
		Order("item_count DESC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
