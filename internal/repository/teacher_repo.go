package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// TeacherRepository persists issuance recipients.
type TeacherRepository interface {
	Get(ctx context.Context, id uint) (models.Teacher, error)
	List(ctx context.Context, activeOnly bool) ([]models.Teacher, error)
	Search(ctx context.Context, query string, limit int) ([]models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	SetReferenceSignature(ctx context.Context, id uint, path string) error
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository constructs a GORM-backed repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Get(ctx context.Context, id uint) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Preload("Department").First(&teacher, id).Error; err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

func (r *teacherRepository) List(ctx context.Context, activeOnly bool) ([]models.Teacher, error) {
	query := r.db.WithContext(ctx).Preload("Department").Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var teachers []models.Teacher
	if err := query.Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *teacherRepository) Search(ctx context.Context, query string, limit int) ([]models.Teacher, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var teachers []models.Teacher
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&teachers).Error; err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

// SetReferenceSignature stores the reference signature path only when none is
// set yet. First write wins; later issuances never overwrite it.
func (r *teacherRepository) SetReferenceSignature(ctx context.Context, id uint, path string) error {
	return r.db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("id = ? AND (signature_path IS NULL OR signature_path = '')", id).
		Update("signature_path", path).
		Error
}
