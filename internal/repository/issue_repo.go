package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// IssueRepository persists issuance records. Issues are append-only: there is
// no update or delete path.
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	CreateLine(ctx context.Context, line *models.IssueLine) error
	Get(ctx context.Context, id uint) (models.Issue, error)
	List(ctx context.Context, limit, offset int) ([]models.Issue, int64, error)
}

type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository constructs a GORM-backed repository.
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Create inserts the issue header. The generated ID is populated on return so
// lines and ledger entries can reference it before the transaction commits.
func (r *issueRepository) Create(ctx context.Context, issue *models.Issue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

func (r *issueRepository) CreateLine(ctx context.Context, line *models.IssueLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *issueRepository) Get(ctx context.Context, id uint) (models.Issue, error) {
	var issue models.Issue
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Lines").
		Preload("Lines.Item").
		First(&issue, id).Error; err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (r *issueRepository) List(ctx context.Context, limit, offset int) ([]models.Issue, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Issue{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []models.Issue
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Lines").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&issues).Error; err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}
