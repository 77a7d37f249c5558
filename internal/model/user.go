package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents an account operating the books. The business fields
// double as the seller identity printed on invoices — notably
// BusinessState, the seller jurisdiction for the inter-state decision.
type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string         `gorm:"type:varchar(255);not null" json:"-"`                   // Omit password from JSON requests/responses
	Role            string         `gorm:"type:varchar(50);not null;default:'staff'" json:"role"` // admin, staff
	BusinessName    string         `gorm:"type:varchar(255)" json:"business_name"`
	BusinessGSTIN   string         `gorm:"type:varchar(15)" json:"business_gstin"`
	BusinessAddress string         `gorm:"type:text" json:"business_address"`
	BusinessState   string         `gorm:"type:varchar(100)" json:"business_state"`
	BusinessPhone   string         `gorm:"type:varchar(20)" json:"business_phone"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}
