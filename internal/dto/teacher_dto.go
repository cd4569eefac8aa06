package dto

import (
	"time"

	"github.com/noah-isme/storeroom-go-api/internal/models"
)

// TeacherCreateRequest registers an issuance recipient.
type TeacherCreateRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	DepartmentID uint   `json:"department_id" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email,max=120"`
}

// TeacherResponse is the API shape of a recipient.
type TeacherResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	DepartmentID   uint      `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	Email          string    `json:"email,omitempty"`
	HasSignature   bool      `json:"has_signature"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewTeacherResponse maps a model to its API shape.
func NewTeacherResponse(teacher models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:             teacher.ID,
		Name:           teacher.Name,
		DepartmentID:   teacher.DepartmentID,
		DepartmentName: teacher.Department.Name,
		Email:          teacher.Email,
		HasSignature:   teacher.SignaturePath != "",
		Active:         teacher.Active,
		CreatedAt:      teacher.CreatedAt,
	}
}

// NewTeacherResponseSlice maps a slice of models.
func NewTeacherResponseSlice(teachers []models.Teacher) []TeacherResponse {
	responses := make([]TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		responses = append(responses, NewTeacherResponse(teacher))
	}
	return responses
}

// DepartmentCreateRequest registers a department.
type DepartmentCreateRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// DepartmentResponse is the API shape of a department.
type DepartmentResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// NewDepartmentResponseSlice maps a slice of models.
func NewDepartmentResponseSlice(departments []models.Department) []DepartmentResponse {
	responses := make([]DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, DepartmentResponse{
			ID:     department.ID,
			Name:   department.Name,
			Active: department.Active,
		})
	}
	return responses
}
