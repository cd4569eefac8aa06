package models

import (
	"time"

	"gorm.io/datatypes"
)

// Issue records one issuance event: a set of items handed to a teacher against
// a captured signature. Issues are created atomically with their lines and are
// never updated or deleted afterwards.
type Issue struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	TeacherID     uint              `gorm:"not null;index" json:"teacher_id"`
	Teacher       Teacher           `json:"teacher,omitempty"`
	UserID        uint              `gorm:"not null" json:"user_id"`
	SignaturePath string            `gorm:"size:255;not null" json:"signature_path"`
	Metadata      datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`
	Lines         []IssueLine       `gorm:"constraint:OnDelete:CASCADE" json:"lines"`
}

// IssueLine is a single item/quantity entry belonging to exactly one issue.
type IssueLine struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	IssueID uint `gorm:"not null;index" json:"issue_id"`
	ItemID  uint `gorm:"not null" json:"item_id"`
	Item    Item `json:"item,omitempty"`
	Qty     int  `gorm:"not null" json:"qty"`
}
