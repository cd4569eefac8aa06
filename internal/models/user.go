package models

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a staff member operating the storeroom; the actor recorded against
// issues and ledger entries.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
