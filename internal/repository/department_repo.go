package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// DepartmentRepository persists departments.
type DepartmentRepository interface {
	Get(ctx context.Context, id uint) (models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, department *models.Department) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository constructs a GORM-backed repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Get(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return models.Department{}, err
	}
	return department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}
