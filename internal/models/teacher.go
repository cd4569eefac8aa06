package models

import "time"

// Department groups teachers for reporting purposes.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Teacher is a recipient of issued items. SignaturePath is the reference
// signature captured on the teacher's first issuance and never overwritten.
type Teacher struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	DepartmentID  uint       `gorm:"not null;index" json:"department_id"`
	Department    Department `json:"department,omitempty"`
	Email         string     `gorm:"size:120" json:"email,omitempty"`
	SignaturePath string     `gorm:"size:255" json:"signature_path,omitempty"`
	Active        bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
