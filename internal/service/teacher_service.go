package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/storeroom-go-api/internal/dto"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/repository"
)

// TeacherService manages the recipient directory used by the checkout flow.
type TeacherService interface {
	Create(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error)
	Get(ctx context.Context, id uint) (dto.TeacherResponse, error)
	List(ctx context.Context, activeOnly bool) ([]dto.TeacherResponse, error)
	Search(ctx context.Context, query string, limit int) ([]dto.TeacherResponse, error)
	CreateDepartment(ctx context.Context, payload dto.DepartmentCreateRequest) (dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
}

type teacherService struct {
	teachers    repository.TeacherRepository
	departments repository.DepartmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewTeacherService constructs the recipient directory service.
func NewTeacherService(
	teachers repository.TeacherRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) TeacherService {
	return &teacherService{
		teachers:    teachers,
		departments: departments,
		validator:   validate,
		logger:      logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) Create(ctx context.Context, payload dto.TeacherCreateRequest) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TeacherResponse{}, err
	}

	if _, err := s.departments.Get(ctx, payload.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrDepartmentNotFound
		}
		return dto.TeacherResponse{}, err
	}

	teacher := models.Teacher{
		Name:         strings.TrimSpace(payload.Name),
		DepartmentID: payload.DepartmentID,
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		Active:       true,
	}
	if err := s.teachers.Create(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher registered")

	// Re-read so the department association is populated.
	created, err := s.teachers.Get(ctx, teacher.ID)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	return dto.NewTeacherResponse(created), nil
}

func (s *teacherService) Get(ctx context.Context, id uint) (dto.TeacherResponse, error) {
	teacher, err := s.teachers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}
	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, activeOnly bool) ([]dto.TeacherResponse, error) {
	teachers, err := s.teachers.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) Search(ctx context.Context, query string, limit int) ([]dto.TeacherResponse, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []dto.TeacherResponse{}, nil
	}

	teachers, err := s.teachers.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewTeacherResponseSlice(teachers), nil
}

func (s *teacherService) CreateDepartment(ctx context.Context, payload dto.DepartmentCreateRequest) (dto.DepartmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DepartmentResponse{}, err
	}

	department := models.Department{
		Name:   strings.TrimSpace(payload.Name),
		Active: true,
	}
	if err := s.departments.Create(ctx, &department); err != nil {
		return dto.DepartmentResponse{}, err
	}

	return dto.DepartmentResponse{ID: department.ID, Name: department.Name, Active: department.Active}, nil
}

func (s *teacherService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewDepartmentResponseSlice(departments), nil
}
